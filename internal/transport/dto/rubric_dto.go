package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRubricRequest defines the structure for creating a scoring criterion.
// MaxScore defaults to 10 and Weight to 1.0 when omitted.
type CreateRubricRequest struct {
	Criteria string   `json:"criteria" validate:"required,max=500"`
	MaxScore *float64 `json:"max_score" validate:"omitempty,gt=0"`
	Weight   *float64 `json:"weight" validate:"omitempty,gt=0"`
}

// UpdateRubricRequest defines the structure for updating a rubric.
type UpdateRubricRequest struct {
	ID       uuid.UUID `json:"-"`
	Criteria *string   `json:"criteria" validate:"omitempty,max=500"`
	MaxScore *float64  `json:"max_score" validate:"omitempty,gt=0"`
	Weight   *float64  `json:"weight" validate:"omitempty,gt=0"`
	IsActive *bool     `json:"is_active"`
}

// RubricResponse is the public view of a rubric.
type RubricResponse struct {
	ID        uuid.UUID `json:"id"`
	Criteria  string    `json:"criteria"`
	MaxScore  float64   `json:"max_score"`
	Weight    float64   `json:"weight"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeleteRubricResponse reports whether the rubric was archived (still
// referenced by scores) or hard-deleted.
type DeleteRubricResponse struct {
	ID       uuid.UUID `json:"id"`
	Archived bool      `json:"archived"`
}
