package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/logger"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_PostsEvent(t *testing.T) {
	var (
		mu       sync.Mutex
		received CompletionEvent
		key      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, http.MethodPost, r.Method)
		key = r.Header.Get("Idempotency-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, logger.Nop())
	ev := CompletionEvent{EventID: "evt-1", EnrollmentID: 3, StudentID: 4, CourseID: 5, CourseTitle: "Go"}
	require.NoError(t, n.CourseCompleted(context.Background(), ev))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "evt-1", key)
	assert.Equal(t, uint(4), received.StudentID)
	assert.Equal(t, "Go", received.CourseTitle)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, logger.Nop()).CourseCompleted(context.Background(), CompletionEvent{EventID: "x"})
	assert.Error(t, err)
}

type recordingNotifier struct {
	events chan CompletionEvent
	err    error
}

func (r *recordingNotifier) CourseCompleted(_ context.Context, ev CompletionEvent) error {
	r.events <- ev
	return r.err
}

func TestDispatcher_BuildsEvent(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	course := courseModels.Course{Title: "Distributed Systems", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	rec := &recordingNotifier{events: make(chan CompletionEvent, 1), err: errors.New("ignored")}
	d := NewDispatcher(rec, db, logger.Nop())

	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	en := courseModels.Enrollment{StudentID: 2, CourseID: course.ID, Status: courseModels.EnrollmentCompleted, CompletedAt: &completedAt}
	en.ID = 77
	d.Handle(context.Background(), en)

	ev := <-rec.events
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, uint(77), ev.EnrollmentID)
	assert.Equal(t, uint(2), ev.StudentID)
	assert.Equal(t, "Distributed Systems", ev.CourseTitle)
	assert.True(t, completedAt.Equal(ev.CompletedAt))
}

func TestCompletionMessage(t *testing.T) {
	user := models.User{Name: "Ada <b>", Email: "ada@example.com"}
	msg := completionMessage(mail.NewEmail("LMS", "no-reply@example.com"), user, CompletionEvent{EventID: "evt", CourseID: 9})

	assert.Equal(t, "You completed course #9", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "ada@example.com", msg.Personalizations[0].To[0].Address)
	assert.Equal(t, "evt", msg.Headers["X-Event-ID"])
	require.Len(t, msg.Content, 2)
	assert.Contains(t, msg.Content[1].Value, "Ada &lt;b&gt;")
}

func TestNew(t *testing.T) {
	n, err := New(&config.Config{Notifier: "none"}, nil, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, n)

	_, err = New(&config.Config{Notifier: "webhook"}, nil, logger.Nop())
	assert.Error(t, err)

	n, err = New(&config.Config{Notifier: "webhook", CompletionWebhookURL: "http://localhost:1"}, nil, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &WebhookNotifier{}, n)

	_, err = New(&config.Config{Notifier: "sendgrid"}, nil, logger.Nop())
	assert.Error(t, err)

	_, err = New(&config.Config{Notifier: "pigeon"}, nil, logger.Nop())
	assert.Error(t, err)
}
