package models

import "gorm.io/gorm"

// Enrollment tracks a student's registration in a course. Progress and
// IsCompleted are derived by the progress tracker; IsCertificateReady is set
// only by the certificate approval flow.
type Enrollment struct {
	gorm.Model
	StudentID          uint    `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID           uint    `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	Price              float64 `json:"price" gorm:"default:0"` // course price at enrollment time
	Progress           int     `json:"progress" gorm:"default:0"`
	IsCompleted        bool    `json:"is_completed" gorm:"default:false"`
	TotalMark          float64 `json:"total_mark" gorm:"default:0"`
	IsCertificateReady bool    `json:"is_certificate_ready" gorm:"default:false"`
	IsActive           bool    `json:"is_active" gorm:"default:true"`
}
