package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Title    string `json:"title" gorm:"not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
