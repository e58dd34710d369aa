package notify

import (
	"context"
	"fmt"
	"html"

	"lms/logger"
	"lms/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gorm.io/gorm"
)

// SendGridNotifier emails the student that they finished the course.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	db     *gorm.DB
	log    *logger.Logger
}

func NewSendGridNotifier(apiKey, sender string, db *gorm.DB, baseLog *logger.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Learning Platform", sender),
		db:     db,
		log:    baseLog.With("notifier", "sendgrid"),
	}
}

func (s *SendGridNotifier) CourseCompleted(ctx context.Context, ev CompletionEvent) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", ev.StudentID, false).First(&user).Error; err != nil {
		return fmt.Errorf("load student %d: %w", ev.StudentID, err)
	}

	msg := completionMessage(s.from, user, ev)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send completion email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	s.log.Debug("completion email sent", "event_id", ev.EventID, "to", user.Email)
	return nil
}

func completionMessage(from *mail.Email, user models.User, ev CompletionEvent) *mail.SGMailV3 {
	title := ev.CourseTitle
	if title == "" {
		title = fmt.Sprintf("course #%d", ev.CourseID)
	}
	to := mail.NewEmail(user.Name, user.Email)
	subject := "You completed " + title
	plain := fmt.Sprintf("Hi %s,\n\nCongratulations, you watched every video in %s.\n", user.Name, title)
	body := emailLayout("Course completed", fmt.Sprintf("<p>Hi %s,</p><p>Congratulations, you watched every video in <strong>%s</strong>.</p>",
		html.EscapeString(user.Name), html.EscapeString(title)))
	msg := mail.NewSingleEmail(from, subject, to, plain, body)
	msg.SetHeader("X-Event-ID", ev.EventID)
	return msg
}
