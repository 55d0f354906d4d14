package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is the per-(student, lesson) watch record. The composite
// unique index is what keeps concurrent watch events from creating duplicate
// rows. IsCompleted is monotonic: once true it never goes back.
type LessonProgress struct {
	gorm.Model
	StudentID        uint       `json:"student_id" gorm:"uniqueIndex:idx_progress_student_lesson;not null"`
	LessonID         uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_student_lesson;not null"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
}
