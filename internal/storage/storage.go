package storage

import (
	"context"
	"time"

	"hiring-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationListFilter narrows the HR application listing.
type ApplicationListFilter struct {
	Status  *models.ApplicationStatus
	Program *string
	Limit   int
	Offset  int
}

// ProgramCount is one row of the per-program breakdown projection.
type ProgramCount struct {
	Program string `json:"program"`
	Count   int64  `json:"count"`
}

// CompletedApplication carries the fields the reporting aggregator needs
// from COMPLETED applications.
type CompletedApplication struct {
	Result    *models.ApplicationResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	WithTx(tx *gorm.DB) ApplicationRepository
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetActiveByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.Application, error)
	LastAttemptNumber(ctx context.Context, applicantID uuid.UUID) (int, error)
	List(ctx context.Context, filter ApplicationListFilter) ([]*models.Application, int64, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error)
	Update(ctx context.Context, app *models.Application) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RubricRepository defines the interface for rubric data operations.
type RubricRepository interface {
	WithTx(tx *gorm.DB) RubricRepository
	Create(ctx context.Context, rubric *models.Rubric) (*models.Rubric, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Rubric, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Rubric, error)
	Update(ctx context.Context, rubric *models.Rubric) (*models.Rubric, error)
	HasScores(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoreRepository defines the interface for score data operations.
type ScoreRepository interface {
	WithTx(tx *gorm.DB) ScoreRepository
	Upsert(ctx context.Context, score *models.Score) (*models.Score, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Score, error)
}

// NotificationRepository defines the interface for the notification audit trail.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Notification, error)
}

// RequirementRepository defines the interface for pre-employment requirements.
type RequirementRepository interface {
	WithTx(tx *gorm.DB) RequirementRepository
	Create(ctx context.Context, req *models.PreEmploymentRequirement) (*models.PreEmploymentRequirement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PreEmploymentRequirement, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.PreEmploymentRequirement, error)
	Update(ctx context.Context, req *models.PreEmploymentRequirement) (*models.PreEmploymentRequirement, error)
}

// ReportRepository exposes the read-only projections used by reporting.
type ReportRepository interface {
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	ProgramBreakdown(ctx context.Context) ([]ProgramCount, error)
	ListCompleted(ctx context.Context) ([]CompletedApplication, error)
}
