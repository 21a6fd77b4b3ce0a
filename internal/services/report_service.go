package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"
	"hiring-api/internal/storage/postgres"
	"hiring-api/internal/transport/dto"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 60 * time.Second
)

type reportService struct {
	repo  storage.ReportRepository
	redis *redis.Client
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewReportService creates a new instance of ReportService. The redis client
// may be nil, in which case every call recomputes the dashboard.
func NewReportService(db *gorm.DB, redisClient *redis.Client, log *zap.SugaredLogger) ReportService {
	return &reportService{
		repo:  postgres.NewReportRepo(db, log),
		redis: redisClient,
		log:   log.With("service", "ReportService"),
		now:   time.Now,
	}
}

// Dashboard aggregates status counts, month-over-month growth, the
// per-program breakdown, average processing time and the pass rate. The
// result is cached in redis for a short interval.
func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, MapRepoError(err, "counting applications by status")
	}

	resp := &dto.DashboardResponse{
		StatusCounts: make(map[string]int64, len(statusCounts)),
	}
	for status, count := range statusCounts {
		resp.StatusCounts[string(status)] = count
		resp.TotalApplications += count
	}

	growth, err := s.monthlyGrowth(ctx)
	if err != nil {
		return nil, err
	}
	resp.MonthlyGrowth = growth

	breakdown, err := s.repo.ProgramBreakdown(ctx)
	if err != nil {
		return nil, MapRepoError(err, "building program breakdown")
	}
	resp.ProgramBreakdown = breakdown

	completed, err := s.repo.ListCompleted(ctx)
	if err != nil {
		return nil, MapRepoError(err, "listing completed applications")
	}
	resp.AvgProcessingDays, resp.PassRate = completedStats(completed)

	s.toCache(ctx, resp)
	return resp, nil
}

// monthlyGrowth compares this calendar month's submissions to last month's:
// ((this - last) / last) * 100, with 100 when last month was empty and this
// month is not, and 0 when both are empty.
func (s *reportService) monthlyGrowth(ctx context.Context) (float64, error) {
	now := s.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	thisCount, err := s.repo.CountCreatedBetween(ctx, thisMonth, now)
	if err != nil {
		return 0, MapRepoError(err, "counting this month's applications")
	}
	lastCount, err := s.repo.CountCreatedBetween(ctx, lastMonth, thisMonth)
	if err != nil {
		return 0, MapRepoError(err, "counting last month's applications")
	}

	if lastCount == 0 {
		if thisCount > 0 {
			return 100, nil
		}
		return 0, nil
	}
	return float64(thisCount-lastCount) / float64(lastCount) * 100, nil
}

// completedStats derives the average processing time in whole days and the
// share of completed applications that passed.
func completedStats(completed []storage.CompletedApplication) (avgDays, passRate float64) {
	if len(completed) == 0 {
		return 0, 0
	}
	var totalDays float64
	var passed int64
	for _, app := range completed {
		totalDays += math.Floor(app.UpdatedAt.Sub(app.CreatedAt).Seconds() / 86400)
		if app.Result != nil && *app.Result == models.ResultPass {
			passed++
		}
	}
	avgDays = totalDays / float64(len(completed))
	passRate = float64(passed) / float64(len(completed)) * 100
	return avgDays, passRate
}

func (s *reportService) fromCache(ctx context.Context) *dto.DashboardResponse {
	if s.redis == nil {
		return nil
	}
	payload, err := s.redis.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Errorf("Error reading dashboard cache: %v", err)
		}
		return nil
	}
	var resp dto.DashboardResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		s.log.Errorf("Error decoding dashboard cache: %v", err)
		return nil
	}
	return &resp
}

func (s *reportService) toCache(ctx context.Context, resp *dto.DashboardResponse) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf("Error encoding dashboard cache: %v", err)
		return
	}
	if err := s.redis.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
		s.log.Errorf("Error writing dashboard cache: %v", err)
	}
}
