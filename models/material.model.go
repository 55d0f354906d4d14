package models

import "gorm.io/gorm"

// Material is a downloadable study file attached to a course
type Material struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	FileType    string `json:"file_type"`
	FileURL     string `json:"file_url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
