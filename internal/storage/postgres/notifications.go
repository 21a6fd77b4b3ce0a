package postgres

import (
	"context"
	"fmt"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationRepo implements the storage.NotificationRepository interface
// using GORM. The table is an append-only audit trail.
type NotificationRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *gorm.DB, log *zap.SugaredLogger) *NotificationRepo {
	return &NotificationRepo{db: db, log: log.With("repo", "NotificationRepo")}
}

// Compile-time check to ensure NotificationRepo implements NotificationRepository
var _ storage.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		r.log.Errorf("Error recording notification to %s: %v", n.Email, err)
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}
	return n, nil
}

func (r *NotificationRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("sent_at DESC").
		Find(&notifications).Error
	if err != nil {
		r.log.Errorf("Error listing notifications for application %s: %v", applicationID, err)
		return nil, fmt.Errorf("failed to list notifications by application: %w", err)
	}
	return notifications, nil
}
