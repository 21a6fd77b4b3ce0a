package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hiring-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyMailer fails a configured number of times before succeeding.
type flakyMailer struct {
	mu       sync.Mutex
	failures int
	sent     []string
}

func (m *flakyMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp: temporary failure")
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

// memoryNotificationRepo records audit rows in memory.
type memoryNotificationRepo struct {
	mu   sync.Mutex
	rows []*models.Notification
}

func (r *memoryNotificationRepo) Create(_ context.Context, n *models.Notification) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	r.rows = append(r.rows, n)
	return n, nil
}

func (r *memoryNotificationRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Notification
	for _, row := range r.rows {
		if row.ApplicationID != nil && *row.ApplicationID == applicationID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (r *memoryNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func TestDispatcherDeliversAndAudits(t *testing.T) {
	// One transient failure: delivery must succeed on the retry.
	mailer := &flakyMailer{failures: 1}
	repo := &memoryNotificationRepo{}
	d := NewDispatcher(mailer, repo, zap.NewNop().Sugar())

	appID := uuid.New()
	d.Notify(Event{
		Kind:          KindApproved,
		To:            "applicant@example.com",
		ApplicationID: &appID,
		Data:          map[string]string{"name": "Alice", "program": "Mathematics"},
	})
	d.Wait()

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "applicant@example.com")
	assert.Contains(t, mailer.sent[0], "Application Approved")

	require.Equal(t, 1, repo.count())
	rows, err := repo.ListByApplication(context.Background(), appID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(KindApproved), rows[0].Type)
}

func TestDispatcherUnknownKindIsDropped(t *testing.T) {
	mailer := &flakyMailer{}
	repo := &memoryNotificationRepo{}
	d := NewDispatcher(mailer, repo, zap.NewNop().Sugar())

	d.Notify(Event{Kind: Kind("bogus"), To: "x@example.com"})
	d.Wait()

	assert.Empty(t, mailer.sent)
	assert.Zero(t, repo.count())
}

func TestWithRetry(t *testing.T) {
	t.Run("Succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Returns last error when exhausted", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, time.Millisecond, func(context.Context) error {
			calls++
			return errors.New("permanent")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := withRetry(ctx, 5, time.Hour, func(context.Context) error {
			return errors.New("always failing")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRenderResultsTemplate(t *testing.T) {
	subject, body, err := Render(Event{
		Kind: KindResults,
		To:   "applicant@example.com",
		Data: map[string]string{
			"name":       "Alice",
			"program":    "Mathematics",
			"percentage": "73.33",
			"result":     "PASS",
			"breakdown":  "- Subject mastery: 8/10 (weight 2)\n",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Evaluation Results", subject)
	assert.Contains(t, body, "73.33")
	assert.Contains(t, body, "PASS")
	assert.Contains(t, body, "Subject mastery")
}
