package models

import "gorm.io/gorm"

// Course represents a published learning course
type Course struct {
	gorm.Model
	Title        string  `json:"title" gorm:"not null"`
	Description  string  `json:"description" gorm:"type:text"`
	BannerURL    string  `json:"banner_url"`
	Price        float64 `json:"price" gorm:"default:0"`
	Duration     float64 `json:"duration" gorm:"default:0"` // duration in hours
	CategoryID   uint    `json:"category_id" gorm:"index;not null"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
}
