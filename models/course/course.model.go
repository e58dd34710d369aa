package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	InstructorID    uint   `json:"instructor_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int64  `json:"duration_minutes" gorm:"default:0"` // nominal length used by the heartbeat path
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `json:"-" gorm:"default:false"`
}
