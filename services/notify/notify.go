package notify

import (
	"context"
	"fmt"
	"time"

	"lms/config"
	"lms/logger"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionEvent is sent when a student's enrollment becomes COMPLETED.
type CompletionEvent struct {
	EventID      string    `json:"event_id"`
	EnrollmentID uint      `json:"enrollment_id"`
	StudentID    uint      `json:"student_id"`
	CourseID     uint      `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Notifier delivers completion events.
type Notifier interface {
	CourseCompleted(ctx context.Context, ev CompletionEvent) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) CourseCompleted(context.Context, CompletionEvent) error { return nil }

// New picks the notifier named by cfg.Notifier.
func New(cfg *config.Config, db *gorm.DB, log *logger.Logger) (Notifier, error) {
	switch cfg.Notifier {
	case "", "none":
		return Noop{}, nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("NOTIFIER=sendgrid requires SENDGRID_API_KEY")
		}
		return NewSendGridNotifier(cfg.SendGridAPIKey, cfg.EmailSender, db, log), nil
	case "webhook":
		if cfg.CompletionWebhookURL == "" {
			return nil, fmt.Errorf("NOTIFIER=webhook requires COMPLETION_WEBHOOK_URL")
		}
		return NewWebhookNotifier(cfg.CompletionWebhookURL, log), nil
	default:
		return nil, fmt.Errorf("unknown NOTIFIER %q", cfg.Notifier)
	}
}

// Dispatcher turns completed enrollments into events and hands them to a
// Notifier with a bounded timeout. Failures are logged only.
type Dispatcher struct {
	notifier Notifier
	db       *gorm.DB
	log      *logger.Logger
	timeout  time.Duration
}

func NewDispatcher(n Notifier, db *gorm.DB, baseLog *logger.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: n,
		db:       db,
		log:      baseLog.With("service", "CompletionDispatcher"),
		timeout:  10 * time.Second,
	}
}

// Handle matches progress.CompletionHook.
func (d *Dispatcher) Handle(ctx context.Context, en courseModels.Enrollment) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ev := CompletionEvent{
		EventID:      uuid.NewString(),
		EnrollmentID: en.ID,
		StudentID:    en.StudentID,
		CourseID:     en.CourseID,
		CompletedAt:  time.Now().UTC(),
	}
	if en.CompletedAt != nil {
		ev.CompletedAt = *en.CompletedAt
	}

	var course courseModels.Course
	if err := d.db.WithContext(ctx).Select("id", "title").Where("id = ?", en.CourseID).First(&course).Error; err == nil {
		ev.CourseTitle = course.Title
	}

	if err := d.notifier.CourseCompleted(ctx, ev); err != nil {
		d.log.Error("completion notification failed", "event_id", ev.EventID, "enrollment_id", en.ID, "error", err)
		return
	}
	d.log.Info("completion notification sent", "event_id", ev.EventID, "enrollment_id", en.ID)
}
