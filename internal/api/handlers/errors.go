package handlers

import (
	"errors"
	"net/http"

	"hiring-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mapServiceError translates service-layer sentinel errors into the error
// envelope with the matching HTTP status.
func mapServiceError(c *gin.Context, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidState):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, "You do not have permission to perform this action", nil)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found", nil)
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, err.Error(), nil)
	default:
		log.Errorf("Unhandled service error: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// parseUUIDParam reads a UUID path parameter, answering 400 on bad input.
// The second return reports whether parsing succeeded.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter: must be a UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}
