package dto

import "hiring-api/internal/storage"

// DashboardResponse is the reporting projection over the applications table.
type DashboardResponse struct {
	TotalApplications int64                  `json:"total_applications"`
	StatusCounts      map[string]int64       `json:"status_counts"`
	MonthlyGrowth     float64                `json:"monthly_growth"`
	ProgramBreakdown  []storage.ProgramCount `json:"program_breakdown"`
	AvgProcessingDays float64                `json:"avg_processing_days"`
	PassRate          float64                `json:"pass_rate"`
}
