package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	// ProgressModelFractional rows are driven by server-side heartbeat increments.
	ProgressModelFractional = "FRACTIONAL"
	// ProgressModelExplicit rows store the watched seconds and flag sent by the client.
	ProgressModelExplicit = "EXPLICIT"
)

// VideoProgress is the per-(student, video) watch record.
type VideoProgress struct {
	gorm.Model
	StudentID       uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_video_progress_student_video"`
	VideoID         uint       `json:"video_id" gorm:"not null;uniqueIndex:idx_video_progress_student_video;index"`
	WatchedSeconds  int        `json:"watched_seconds" gorm:"default:0"`
	DurationSeconds int        `json:"duration_seconds" gorm:"default:0"`
	WatchedAmount   float64    `json:"watched_amount" gorm:"default:0"` // percentage 0-100
	IsCompleted     bool       `json:"is_completed" gorm:"default:false"`
	ProgressModel   string     `json:"progress_model" gorm:"default:'FRACTIONAL'"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func (VideoProgress) TableName() string { return "video_progress" }
