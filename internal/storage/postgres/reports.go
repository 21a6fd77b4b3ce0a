package postgres

import (
	"context"
	"fmt"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportRepo implements the storage.ReportRepository interface using GORM.
// Read-only projections over the applications table.
type ReportRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *gorm.DB, log *zap.SugaredLogger) *ReportRepo {
	return &ReportRepo{db: db, log: log.With("repo", "ReportRepo")}
}

// Compile-time check to ensure ReportRepo implements ReportRepository
var _ storage.ReportRepository = (*ReportRepo)(nil)

func (r *ReportRepo) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	type row struct {
		Status models.ApplicationStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		r.log.Errorf("Error counting applications by status: %v", err)
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ReportRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		r.log.Errorf("Error counting applications created between %s and %s: %v", from, to, err)
		return 0, fmt.Errorf("failed to count applications by creation window: %w", err)
	}
	return count, nil
}

func (r *ReportRepo) ProgramBreakdown(ctx context.Context) ([]storage.ProgramCount, error) {
	var rows []storage.ProgramCount
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("program, COUNT(*) as count").
		Group("program").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		r.log.Errorf("Error building program breakdown: %v", err)
		return nil, fmt.Errorf("failed to build program breakdown: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) ListCompleted(ctx context.Context) ([]storage.CompletedApplication, error) {
	var rows []storage.CompletedApplication
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("result, created_at, updated_at").
		Where("status = ?", models.StatusCompleted).
		Scan(&rows).Error
	if err != nil {
		r.log.Errorf("Error listing completed applications: %v", err)
		return nil, fmt.Errorf("failed to list completed applications: %w", err)
	}
	return rows, nil
}
