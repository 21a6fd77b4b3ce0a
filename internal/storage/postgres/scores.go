package postgres

import (
	"context"
	"fmt"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRepo implements the storage.ScoreRepository interface using GORM.
type ScoreRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewScoreRepo creates a new ScoreRepo.
func NewScoreRepo(db *gorm.DB, log *zap.SugaredLogger) *ScoreRepo {
	return &ScoreRepo{db: db, log: log.With("repo", "ScoreRepo")}
}

func (r *ScoreRepo) WithTx(tx *gorm.DB) storage.ScoreRepository {
	return &ScoreRepo{db: tx, log: r.log}
}

// Compile-time check to ensure ScoreRepo implements ScoreRepository
var _ storage.ScoreRepository = (*ScoreRepo)(nil)

// Upsert inserts the score or, when the (application_id, rubric_id) pair
// already exists, overwrites score_value and comments. Last write wins.
func (r *ScoreRepo) Upsert(ctx context.Context, score *models.Score) (*models.Score, error) {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}, {Name: "rubric_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score_value", "comments", "updated_at"}),
	}).Create(score).Error
	if err != nil {
		r.log.Errorf("Error upserting score for application %s rubric %s: %v",
			score.ApplicationID, score.RubricID, err)
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}

	// Re-read: on the update path the inserted ID is discarded by the DB.
	var saved models.Score
	err = r.db.WithContext(ctx).
		Where("application_id = ? AND rubric_id = ?", score.ApplicationID, score.RubricID).
		First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload upserted score: %w", err)
	}
	return &saved, nil
}

func (r *ScoreRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Score, error) {
	var scores []*models.Score
	err := r.db.WithContext(ctx).
		Preload("Rubric").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&scores).Error
	if err != nil {
		r.log.Errorf("Error listing scores for application %s: %v", applicationID, err)
		return nil, fmt.Errorf("failed to list scores by application: %w", err)
	}
	return scores, nil
}
