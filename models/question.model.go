package models

import "gorm.io/gorm"

// QuestionAnswer is a forum post on a lesson
type QuestionAnswer struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	LessonID    uint   `json:"lesson_id" gorm:"index;not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
