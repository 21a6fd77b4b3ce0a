package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// --- Role Enum ---
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleHR        Role = "HR"
	RoleAdmin     Role = "ADMIN"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleApplicant, RoleHR, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "PENDING"
	StatusApproved  ApplicationStatus = "APPROVED"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusCompleted ApplicationStatus = "COMPLETED"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// IsActive reports whether an application in this status still blocks a new attempt.
func (s ApplicationStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// --- Application Result Enum ---
type ApplicationResult string

const (
	ResultPass ApplicationResult = "PASS"
	ResultFail ApplicationResult = "FAIL"
)

// --- Requirement Status Enum ---
type RequirementStatus string

const (
	RequirementPending   RequirementStatus = "PENDING"
	RequirementSubmitted RequirementStatus = "SUBMITTED"
	RequirementVerified  RequirementStatus = "VERIFIED"
	RequirementRejected  RequirementStatus = "REJECTED"
)

// User represents an account in the system (applicant, HR staff or admin).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'APPLICANT';index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application represents one hiring attempt by one applicant.
// At most one application per applicant may be PENDING or APPROVED at a
// time; on postgres this is additionally backed by a partial unique index.
type Application struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicantID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"applicant_id"`
	Applicant     *User              `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Program       string             `gorm:"not null" json:"program"`
	Status        ApplicationStatus  `gorm:"type:varchar(16);not null;index" json:"status"`
	Result        *ApplicationResult `gorm:"type:varchar(8)" json:"result,omitempty"`
	TotalScore    *float64           `json:"total_score,omitempty"`
	AttemptNumber int                `gorm:"not null" json:"attempt_number"`
	DemoSchedule  *time.Time         `json:"demo_schedule,omitempty"`
	HRNotes       *string            `json:"hr_notes,omitempty"`
	Documents     datatypes.JSON     `json:"documents,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Rubric is a scoring criterion with a maximum point value and a relative
// weight. Rubrics referenced by scores are archived (IsActive=false) instead
// of deleted.
type Rubric struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Criteria  string    `gorm:"not null" json:"criteria"`
	MaxScore  float64   `gorm:"not null;default:10" json:"max_score"`
	Weight    float64   `gorm:"not null;default:1" json:"weight"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score joins one Application and one Rubric. Re-scoring upserts on the
// (application_id, rubric_id) unique index; no history is kept.
type Score struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_scores_application_rubric" json:"application_id"`
	RubricID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_scores_application_rubric" json:"rubric_id"`
	Rubric        *Rubric   `gorm:"foreignKey:RubricID" json:"rubric,omitempty"`
	ScoreValue    float64   `gorm:"not null" json:"score_value"`
	Comments      *string   `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Notification is an append-only audit record of a dispatched email.
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"not null;index" json:"email"`
	Subject       string     `gorm:"not null" json:"subject"`
	Message       string     `gorm:"not null" json:"message"`
	Type          string     `gorm:"not null;index" json:"type"`
	ApplicationID *uuid.UUID `gorm:"type:uuid;index" json:"application_id,omitempty"`
	SentAt        time.Time  `gorm:"not null" json:"sent_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PreEmploymentRequirement tracks one document requested from a passing
// applicant before employment.
type PreEmploymentRequirement struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"application_id"`
	Name          string            `gorm:"not null" json:"name"`
	Status        RequirementStatus `gorm:"type:varchar(16);not null;default:'PENDING'" json:"status"`
	Document      datatypes.JSON    `json:"document,omitempty"`
	Remarks       *string           `json:"remarks,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
