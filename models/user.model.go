package models

import (
	"gorm.io/gorm"
)

// User is owned by the auth service; this service only reads it.
type User struct {
	gorm.Model
	Name      string `gorm:"default:''"`
	Email     string `gorm:"unique;not null"`
	Role      string `gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	IsDeleted bool   `gorm:"default:false"`
}
