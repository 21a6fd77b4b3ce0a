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

// RequirementRepo implements the storage.RequirementRepository interface using GORM.
type RequirementRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewRequirementRepo creates a new RequirementRepo.
func NewRequirementRepo(db *gorm.DB, log *zap.SugaredLogger) *RequirementRepo {
	return &RequirementRepo{db: db, log: log.With("repo", "RequirementRepo")}
}

func (r *RequirementRepo) WithTx(tx *gorm.DB) storage.RequirementRepository {
	return &RequirementRepo{db: tx, log: r.log}
}

// Compile-time check to ensure RequirementRepo implements RequirementRepository
var _ storage.RequirementRepository = (*RequirementRepo)(nil)

func (r *RequirementRepo) Create(ctx context.Context, req *models.PreEmploymentRequirement) (*models.PreEmploymentRequirement, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		r.log.Errorf("Error creating requirement for application %s: %v", req.ApplicationID, err)
		return nil, fmt.Errorf("failed to create requirement: %w", err)
	}
	return req, nil
}

func (r *RequirementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PreEmploymentRequirement, error) {
	var req models.PreEmploymentRequirement
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving requirement by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get requirement by ID %s: %w", id, err)
	}
	return &req, nil
}

func (r *RequirementRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.PreEmploymentRequirement, error) {
	var reqs []*models.PreEmploymentRequirement
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		r.log.Errorf("Error listing requirements for application %s: %v", applicationID, err)
		return nil, fmt.Errorf("failed to list requirements by application: %w", err)
	}
	return reqs, nil
}

func (r *RequirementRepo) Update(ctx context.Context, req *models.PreEmploymentRequirement) (*models.PreEmploymentRequirement, error) {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		r.log.Errorf("Error updating requirement %s: %v", req.ID, err)
		return nil, fmt.Errorf("failed to update requirement: %w", err)
	}
	return req, nil
}
