package notify

import (
	"context"
	"sync"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"go.uber.org/zap"
)

const (
	sendTimeout   = 30 * time.Second
	retryAttempts = 3
	retryBaseWait = 1 * time.Second
)

// dispatcher delivers events in background goroutines and records an audit
// row per successful send. It never propagates delivery errors to callers.
type dispatcher struct {
	mailer Mailer
	repo   storage.NotificationRepository
	log    *zap.SugaredLogger
	wg     sync.WaitGroup
}

// NewDispatcher creates a fire-and-forget dispatcher over the given mailer.
func NewDispatcher(mailer Mailer, repo storage.NotificationRepository, log *zap.SugaredLogger) Dispatcher {
	return &dispatcher{
		mailer: mailer,
		repo:   repo,
		log:    log.With("component", "NotificationDispatcher"),
	}
}

func (d *dispatcher) Notify(event Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		// Detached from the request context: the lifecycle operation must
		// not be extended or failed by delivery.
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		d.deliver(ctx, event)
	}()
}

func (d *dispatcher) Wait() {
	d.wg.Wait()
}

func (d *dispatcher) deliver(ctx context.Context, event Event) {
	subject, body, err := Render(event)
	if err != nil {
		d.log.Errorf("Dropping notification %s to %s: %v", event.Kind, event.To, err)
		return
	}

	err = withRetry(ctx, retryAttempts, retryBaseWait, func(ctx context.Context) error {
		return d.mailer.Send(ctx, event.To, subject, body)
	})
	if err != nil {
		d.log.Errorf("Failed to send notification %s to %s after %d attempts: %v",
			event.Kind, event.To, retryAttempts, err)
		return
	}

	_, err = d.repo.Create(ctx, &models.Notification{
		Email:         event.To,
		Subject:       subject,
		Message:       body,
		Type:          string(event.Kind),
		ApplicationID: event.ApplicationID,
		SentAt:        time.Now().UTC(),
	})
	if err != nil {
		d.log.Errorf("Notification %s sent to %s but audit record failed: %v", event.Kind, event.To, err)
		return
	}
	d.log.Infof("Notification %s sent to %s", event.Kind, event.To)
}
