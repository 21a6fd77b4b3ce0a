package services_test

import (
	"context"
	"testing"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// completeApplication forces an application into COMPLETED with controlled
// timestamps, bypassing GORM's automatic ones.
func completeApplication(t *testing.T, db *gorm.DB, app *models.Application, result models.ApplicationResult, processingDays float64) {
	t.Helper()
	now := time.Now().UTC()
	created := now.Add(-time.Duration(processingDays * 24 * float64(time.Hour)))
	err := db.Model(&models.Application{}).
		Where("id = ?", app.ID).
		UpdateColumns(map[string]interface{}{
			"status":     models.StatusCompleted,
			"result":     string(result),
			"created_at": created,
			"updated_at": now,
		}).Error
	require.NoError(t, err)
}

func TestReportService_Dashboard(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := services.NewReportService(db, rdb, newTestLogger())
	ctx := context.Background()

	hr := createTestUser(t, db, "hr@example.com", models.RoleHR)
	_ = hr

	a := createTestUser(t, db, "a@example.com", models.RoleApplicant)
	b := createTestUser(t, db, "b@example.com", models.RoleApplicant)
	c := createTestUser(t, db, "c@example.com", models.RoleApplicant)

	createTestApplication(t, db, a.ID, models.StatusPending)
	passed := createTestApplication(t, db, b.ID, models.StatusApproved)
	failed := createTestApplication(t, db, c.ID, models.StatusApproved)
	completeApplication(t, db, passed, models.ResultPass, 3.5)
	completeApplication(t, db, failed, models.ResultFail, 2.5)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, dashboard.TotalApplications)
	assert.EqualValues(t, 1, dashboard.StatusCounts[string(models.StatusPending)])
	assert.EqualValues(t, 2, dashboard.StatusCounts[string(models.StatusCompleted)])

	// Whole-day floor: 3.5 days -> 3, 2.5 days -> 2, average 2.5.
	assert.InDelta(t, 2.5, dashboard.AvgProcessingDays, 1e-9)
	assert.InDelta(t, 50.0, dashboard.PassRate, 1e-9)

	require.NotEmpty(t, dashboard.ProgramBreakdown)
	assert.Equal(t, "Mathematics", dashboard.ProgramBreakdown[0].Program)
	assert.EqualValues(t, 3, dashboard.ProgramBreakdown[0].Count)

	// All submissions happened this month and none last month.
	assert.InDelta(t, 100.0, dashboard.MonthlyGrowth, 1e-9)
}

func TestReportService_DashboardCaching(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	svc := services.NewReportService(db, rdb, newTestLogger())
	ctx := context.Background()

	a := createTestUser(t, db, "a@example.com", models.RoleApplicant)
	createTestApplication(t, db, a.ID, models.StatusPending)

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.TotalApplications)

	// New data must not show up while the cached entry is fresh.
	b := createTestUser(t, db, "b@example.com", models.RoleApplicant)
	createTestApplication(t, db, b.ID, models.StatusPending)

	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.TotalApplications)
}

func TestReportService_DashboardWithoutCache(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewReportService(db, nil, newTestLogger())
	ctx := context.Background()

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, dashboard.TotalApplications)
	assert.InDelta(t, 0.0, dashboard.MonthlyGrowth, 1e-9)
	assert.InDelta(t, 0.0, dashboard.PassRate, 1e-9)
}
