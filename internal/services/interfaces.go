package services

import (
	"context"

	"hiring-api/internal/models"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) // user, access, refresh
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, req *dto.GetUserRequest) (*models.User, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, req *dto.DeleteUserRequest) error
}

// ApplicationService defines the interface for lifecycle business logic.
type ApplicationService interface {
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.Application, error)
	ListNotifications(ctx context.Context, req *dto.GetApplicationRequest) ([]*models.Notification, error)
	List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, int64, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error)
	GetActiveByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.Application, error)
	Approve(ctx context.Context, req *dto.ReviewApplicationRequest) (*models.Application, error)
	Reject(ctx context.Context, req *dto.ReviewApplicationRequest) (*models.Application, error)
	ScheduleDemo(ctx context.Context, req *dto.ScheduleDemoRequest) (*models.Application, error)
	Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoringService defines the interface for scoring and rubric business logic.
type ScoringService interface {
	RecordScore(ctx context.Context, req *dto.RecordScoreRequest) (*models.Score, error)
	Calculate(ctx context.Context, applicationID uuid.UUID) (*dto.ScoreCalculation, error)
	Complete(ctx context.Context, applicationID uuid.UUID) (*models.Application, *dto.ScoreCalculation, error)
	Summary(ctx context.Context, req *dto.SummaryRequest) (*dto.ScoringSummaryResponse, error)

	CreateRubric(ctx context.Context, req *dto.CreateRubricRequest) (*models.Rubric, error)
	GetRubric(ctx context.Context, id uuid.UUID) (*models.Rubric, error)
	ListRubrics(ctx context.Context, activeOnly bool) ([]*models.Rubric, error)
	UpdateRubric(ctx context.Context, req *dto.UpdateRubricRequest) (*models.Rubric, error)
	DeleteRubric(ctx context.Context, id uuid.UUID) (archived bool, err error)
}

// ReportService defines the interface for the read-only reporting projections.
type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

// RequirementService defines the interface for pre-employment requirements.
type RequirementService interface {
	Create(ctx context.Context, req *dto.CreateRequirementRequest) (*models.PreEmploymentRequirement, error)
	ListByApplication(ctx context.Context, req *dto.ListRequirementsRequest) ([]*models.PreEmploymentRequirement, error)
	Submit(ctx context.Context, req *dto.SubmitRequirementRequest) (*models.PreEmploymentRequirement, error)
	Verify(ctx context.Context, req *dto.VerifyRequirementRequest) (*models.PreEmploymentRequirement, error)
}
