package dto

import (
	"time"

	"github.com/google/uuid"

	"hiring-api/internal/models"
)

// RecordScoreRequest defines the structure for scoring one rubric on an application.
type RecordScoreRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	RubricID      uuid.UUID `json:"rubric_id" validate:"required"`
	ScoreValue    float64   `json:"score_value" validate:"gte=0"`
	Comments      *string   `json:"comments" validate:"omitempty,max=2000"`
}

// ScoreResponse is the public view of one recorded score.
type ScoreResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	RubricID      uuid.UUID `json:"rubric_id"`
	Criteria      string    `json:"criteria,omitempty"`
	ScoreValue    float64   `json:"score_value"`
	MaxScore      float64   `json:"max_score,omitempty"`
	Weight        float64   `json:"weight,omitempty"`
	Comments      *string   `json:"comments,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RubricBreakdownEntry is one line of the per-rubric calculation breakdown.
type RubricBreakdownEntry struct {
	RubricID   uuid.UUID `json:"rubric_id"`
	Criteria   string    `json:"criteria"`
	ScoreValue float64   `json:"score_value"`
	MaxScore   float64   `json:"max_score"`
	Weight     float64   `json:"weight"`
	Weighted   float64   `json:"weighted"`
}

// ScoreCalculation is the weighted aggregate over an application's scores.
type ScoreCalculation struct {
	ApplicationID    uuid.UUID                `json:"application_id"`
	TotalScore       float64                  `json:"total_score"`
	MaxPossibleScore float64                  `json:"max_possible_score"`
	Percentage       float64                  `json:"percentage"`
	PassingThreshold float64                  `json:"passing_threshold"`
	Result           models.ApplicationResult `json:"result"`
	Breakdown        []RubricBreakdownEntry   `json:"breakdown"`
}

// SummaryRequest carries the target application and caller identity.
type SummaryRequest struct {
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Role          models.Role
}

// ScoringSummaryResponse combines the application, its scores and the
// stored-or-computed result.
type ScoringSummaryResponse struct {
	Application ApplicationResponse `json:"application"`
	Scores      []ScoreResponse     `json:"scores"`
	Calculation *ScoreCalculation   `json:"calculation,omitempty"`
}
