package postgres

import (
	"context"
	"errors"
	"fmt"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationRepo implements the storage.ApplicationRepository interface using GORM.
type ApplicationRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *gorm.DB, log *zap.SugaredLogger) *ApplicationRepo {
	return &ApplicationRepo{db: db, log: log.With("repo", "ApplicationRepo")}
}

func (r *ApplicationRepo) WithTx(tx *gorm.DB) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx, log: r.log}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			// Partial unique index on (applicant_id) WHERE status IN
			// ('PENDING','APPROVED') fired under concurrent creation.
			r.log.Infof("Application create rejected, active application exists for applicant %s", app.ApplicantID)
			return nil, storage.ErrConflict
		}
		r.log.Errorf("Error creating application: %v", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	r.log.Infof("Application created successfully with ID: %s (attempt %d)", app.ID, app.AttemptNumber)
	return app, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Preload("Applicant").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving application by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return &app, nil
}

func (r *ApplicationRepo) GetActiveByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ? AND status IN ?", applicantID,
			[]models.ApplicationStatus{models.StatusPending, models.StatusApproved}).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving active application for applicant %s: %v", applicantID, err)
		return nil, fmt.Errorf("failed to get active application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepo) LastAttemptNumber(ctx context.Context, applicantID uuid.UUID) (int, error) {
	var last *int
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ?", applicantID).
		Select("MAX(attempt_number)").
		Scan(&last).Error
	if err != nil {
		r.log.Errorf("Error reading last attempt number for applicant %s: %v", applicantID, err)
		return 0, fmt.Errorf("failed to read last attempt number: %w", err)
	}
	if last == nil {
		return 0, nil
	}
	return *last, nil
}

func (r *ApplicationRepo) List(ctx context.Context, filter storage.ApplicationListFilter) ([]*models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Program != nil {
		query = query.Where("program = ?", *filter.Program)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorf("Error counting applications: %v", err)
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	var apps []*models.Application
	err := query.Preload("Applicant").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&apps).Error
	if err != nil {
		r.log.Errorf("Error listing applications: %v", err)
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, total, nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("attempt_number DESC").
		Find(&apps).Error
	if err != nil {
		r.log.Errorf("Error listing applications for applicant %s: %v", applicantID, err)
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	if err := r.db.WithContext(ctx).Save(app).Error; err != nil {
		r.log.Errorf("Error updating application %s: %v", app.ID, err)
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorf("Error deleting application %s: %v", id, res.Error)
		return fmt.Errorf("failed to delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	r.log.Infof("Application deleted successfully with ID: %s", id)
	return nil
}
