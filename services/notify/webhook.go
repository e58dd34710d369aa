package notify

import (
	"context"
	"fmt"
	"time"

	"lms/logger"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier POSTs the event as JSON to a fixed URL.
type WebhookNotifier struct {
	url    string
	client *resty.Client
	log    *logger.Logger
}

func NewWebhookNotifier(url string, baseLog *logger.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{url: url, client: client, log: baseLog.With("notifier", "webhook")}
}

func (w *WebhookNotifier) CourseCompleted(ctx context.Context, ev CompletionEvent) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", ev.EventID).
		SetBody(ev).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post completion webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("completion webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
	w.log.Debug("webhook delivered", "event_id", ev.EventID, "status", resp.StatusCode())
	return nil
}
