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

// RubricRepo implements the storage.RubricRepository interface using GORM.
type RubricRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewRubricRepo creates a new RubricRepo.
func NewRubricRepo(db *gorm.DB, log *zap.SugaredLogger) *RubricRepo {
	return &RubricRepo{db: db, log: log.With("repo", "RubricRepo")}
}

func (r *RubricRepo) WithTx(tx *gorm.DB) storage.RubricRepository {
	return &RubricRepo{db: tx, log: r.log}
}

// Compile-time check to ensure RubricRepo implements RubricRepository
var _ storage.RubricRepository = (*RubricRepo)(nil)

func (r *RubricRepo) Create(ctx context.Context, rubric *models.Rubric) (*models.Rubric, error) {
	if rubric.ID == uuid.Nil {
		rubric.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(rubric).Error; err != nil {
		r.log.Errorf("Error creating rubric: %v", err)
		return nil, fmt.Errorf("failed to create rubric: %w", err)
	}
	return rubric, nil
}

func (r *RubricRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Rubric, error) {
	var rubric models.Rubric
	if err := r.db.WithContext(ctx).First(&rubric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving rubric by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get rubric by ID %s: %w", id, err)
	}
	return &rubric, nil
}

func (r *RubricRepo) List(ctx context.Context, activeOnly bool) ([]*models.Rubric, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rubrics []*models.Rubric
	if err := query.Find(&rubrics).Error; err != nil {
		r.log.Errorf("Error listing rubrics: %v", err)
		return nil, fmt.Errorf("failed to list rubrics: %w", err)
	}
	return rubrics, nil
}

func (r *RubricRepo) Update(ctx context.Context, rubric *models.Rubric) (*models.Rubric, error) {
	if err := r.db.WithContext(ctx).Save(rubric).Error; err != nil {
		r.log.Errorf("Error updating rubric %s: %v", rubric.ID, err)
		return nil, fmt.Errorf("failed to update rubric: %w", err)
	}
	return rubric, nil
}

func (r *RubricRepo) HasScores(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("rubric_id = ?", id).
		Count(&count).Error
	if err != nil {
		r.log.Errorf("Error counting scores for rubric %s: %v", id, err)
		return false, fmt.Errorf("failed to count scores for rubric: %w", err)
	}
	return count > 0, nil
}

func (r *RubricRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Rubric{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorf("Error deleting rubric %s: %v", id, res.Error)
		return fmt.Errorf("failed to delete rubric: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	r.log.Infof("Rubric deleted successfully with ID: %s", id)
	return nil
}
