package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentSuspended = "SUSPENDED"
	EnrollmentCancelled = "CANCELLED"
)

// Enrollment tracks a student's enrollment in a course with progress.
// Progress, counts, module breakdown and completion are written by the roll-up only.
type Enrollment struct {
	gorm.Model
	StudentID       uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	CourseID        uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course;index"`
	Status          string         `json:"status" gorm:"default:'ACTIVE'"`
	Progress        float64        `json:"progress" gorm:"default:0"` // Completion percentage (0-100)
	CompletedVideos int            `json:"completed_videos" gorm:"default:0"`
	TotalVideos     int            `json:"total_videos" gorm:"default:0"`
	ModuleProgress  datatypes.JSON `json:"module_progress"`
	EnrolledAt      time.Time      `json:"enrolled_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
}

// ModuleProgress is one element of Enrollment.ModuleProgress.
type ModuleProgress struct {
	ModuleID        uint `json:"module_id"`
	CompletedVideos int  `json:"completed_videos"`
	TotalVideos     int  `json:"total_videos"`
}
