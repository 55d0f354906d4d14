package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CertRequestPending  = "PENDING"
	CertRequestApproved = "APPROVED"
	CertRequestRejected = "REJECTED"
)

// CertificateRequest represents a student's request for a course completion
// certificate. Approval is a manual, instructor-driven step; it is never
// triggered automatically by course completion.
type CertificateRequest struct {
	gorm.Model
	StudentID       uint       `json:"student_id" gorm:"index;not null"`
	CourseID        uint       `json:"course_id" gorm:"index;not null"`
	EnrollmentID    uint       `json:"enrollment_id" gorm:"index;not null"`
	Status          string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	RequestedAt     time.Time  `json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	RejectionReason string     `json:"rejection_reason"`
}

// Certificate is an issued completion certificate record
type Certificate struct {
	gorm.Model
	StudentID         uint      `json:"student_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
}
