package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MapRepoError maps storage errors to service errors
func MapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s (duplicate email)", ErrConflict, operation)
	}
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// canViewApplication reports whether the caller may read an application's data.
func canViewApplication(app *models.Application, userID uuid.UUID, role models.Role) bool {
	if role == models.RoleHR || role == models.RoleAdmin {
		return true
	}
	return app.ApplicantID == userID
}

// documentsToJSON serializes document descriptors for persistence.
func documentsToJSON(docs []dto.DocumentDescriptor) (datatypes.JSON, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("serializing documents: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func ptrFloat64(f float64) *float64 { return &f }
