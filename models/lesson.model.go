package models

import "gorm.io/gorm"

const (
	LessonTypeYoutube = "YOUTUBE"
	LessonTypeUpload  = "UPLOAD"
	LessonTypeText    = "TEXT"
)

// Lesson belongs to exactly one course. Only lessons with IsActive true count
// toward course completion totals.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"not null"`
	Description     string `json:"description" gorm:"type:text"`
	LessonType      string `json:"lesson_type" gorm:"default:'YOUTUBE'"` // YOUTUBE, UPLOAD, TEXT
	YoutubeURL      string `json:"youtube_url"`
	VideoURL        string `json:"video_url"` // for uploaded videos
	TextContent     string `json:"text_content" gorm:"type:text"`
	OrderIndex      int    `json:"order" gorm:"default:0"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
}
