package models

import (
	"time"

	"gorm.io/gorm"
)

// Closed role set. Role checks are done against these constants at the
// route-group boundary, never by comparing raw strings in handlers.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

type User struct {
	gorm.Model
	FirstName    string     `json:"first_name" gorm:"default:''"`
	LastName     string     `json:"last_name" gorm:"default:''"`
	Username     string     `json:"username" gorm:"unique;not null"`
	Email        string     `json:"email" gorm:"unique;not null"`
	Password     string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER
	ProfileImage string     `json:"profile_image" gorm:"default:''"`
	LastLogin    *time.Time `json:"last_login"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
}
