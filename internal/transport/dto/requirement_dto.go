package dto

import (
	"time"

	"github.com/google/uuid"

	"hiring-api/internal/models"
)

// CreateRequirementRequest defines a document HR requests from a passing applicant.
type CreateRequirementRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	Name          string    `json:"name" validate:"required,max=200"`
}

// SubmitRequirementRequest attaches the applicant's document descriptor.
type SubmitRequirementRequest struct {
	ID       uuid.UUID          `json:"-"`
	UserID   uuid.UUID          `json:"-"`
	Document DocumentDescriptor `json:"document" validate:"required"`
}

// VerifyRequirementRequest records the HR verification decision.
type VerifyRequirementRequest struct {
	ID       uuid.UUID `json:"-"`
	Approved bool      `json:"approved"`
	Remarks  *string   `json:"remarks" validate:"omitempty,max=2000"`
}

// ListRequirementsRequest carries the target application and caller identity.
type ListRequirementsRequest struct {
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Role          models.Role
}

// RequirementResponse is the public view of a pre-employment requirement.
type RequirementResponse struct {
	ID            uuid.UUID                `json:"id"`
	ApplicationID uuid.UUID                `json:"application_id"`
	Name          string                   `json:"name"`
	Status        models.RequirementStatus `json:"status"`
	Document      *DocumentDescriptor      `json:"document,omitempty"`
	Remarks       *string                  `json:"remarks,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}
