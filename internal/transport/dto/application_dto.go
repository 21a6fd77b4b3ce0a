package dto

import (
	"time"

	"github.com/google/uuid"

	"hiring-api/internal/models"
)

// DocumentDescriptor describes one uploaded file attached to an application.
// Only the descriptor is persisted; the bytes live with the storage provider.
type DocumentDescriptor struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,max=2048"`
	Type string `json:"type" validate:"omitempty,max=64"`
	Size int64  `json:"size" validate:"omitempty,gte=0"`
}

// CreateApplicationRequest defines the structure for submitting a new application.
type CreateApplicationRequest struct {
	ApplicantID uuid.UUID            `json:"-"`
	Program     string               `json:"program" validate:"required,max=200"`
	Documents   []DocumentDescriptor `json:"documents" validate:"omitempty,dive"`
}

// ReviewApplicationRequest covers both the approve and reject transitions.
type ReviewApplicationRequest struct {
	ID      uuid.UUID `json:"-"`
	HRNotes *string   `json:"hr_notes" validate:"omitempty,max=2000"`
}

// ScheduleDemoRequest defines the structure for setting a demo slot.
type ScheduleDemoRequest struct {
	ID           uuid.UUID `json:"-"`
	DemoSchedule time.Time `json:"demo_schedule" validate:"required"`
}

// UpdateApplicationRequest is the generic HR patch over mutable fields.
type UpdateApplicationRequest struct {
	ID           uuid.UUID            `json:"-"`
	Program      *string              `json:"program" validate:"omitempty,max=200"`
	HRNotes      *string              `json:"hr_notes" validate:"omitempty,max=2000"`
	DemoSchedule *time.Time           `json:"demo_schedule"`
	Documents    []DocumentDescriptor `json:"documents" validate:"omitempty,dive"`
}

// GetApplicationRequest carries the target and caller identity for reads.
type GetApplicationRequest struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Role   models.Role
}

// ListApplicationsRequest defines the HR listing filters.
type ListApplicationsRequest struct {
	Status  *models.ApplicationStatus `form:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	Program *string                   `form:"program" validate:"omitempty,max=200"`
	Limit   int                       `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset  int                       `form:"offset" validate:"omitempty,gte=0"`
}

// ApplicationResponse is the public view of an application.
type ApplicationResponse struct {
	ID            uuid.UUID                  `json:"id"`
	ApplicantID   uuid.UUID                  `json:"applicant_id"`
	ApplicantName string                     `json:"applicant_name,omitempty"`
	Program       string                     `json:"program"`
	Status        models.ApplicationStatus   `json:"status"`
	Result        *models.ApplicationResult  `json:"result,omitempty"`
	TotalScore    *float64                   `json:"total_score,omitempty"`
	AttemptNumber int                        `json:"attempt_number"`
	DemoSchedule  *time.Time                 `json:"demo_schedule,omitempty"`
	HRNotes       *string                    `json:"hr_notes,omitempty"`
	Documents     []DocumentDescriptor       `json:"documents,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// ApplicationListResponse wraps a page of applications with the total count.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// NotificationResponse is one entry of an application's email audit trail.
type NotificationResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Type    string    `json:"type"`
	SentAt  time.Time `json:"sent_at"`
}
