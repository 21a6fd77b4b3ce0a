package handlers

import (
	"fmt"
	"net/http"

	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func respondError(c *gin.Context, status int, message string, errs map[string]string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// FormatValidationErrors turns validator errors into a field -> message map.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		}
	}
	return errorsMap
}

func respondValidationError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Validation failed", FormatValidationErrors(err))
}

// callerIdentity reads the authenticated user's ID and role from the request
// context, answering 401 when the auth middleware did not run.
func callerIdentity(c *gin.Context) (uuid.UUID, models.Role, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return uuid.Nil, "", false
	}
	role, err := middleware.GetRoleFromContext(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return uuid.Nil, "", false
	}
	return userID, role, true
}
