package handlers

import (
	"encoding/json"
	"net/http"

	"hiring-api/internal/models"
	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequirementHandler holds the service dependency for pre-employment requirements
type RequirementHandler struct {
	service   services.RequirementService
	validator *validator.Validate
	log       *zap.SugaredLogger
}

// NewRequirementHandler creates a new RequirementHandler with the given service
func NewRequirementHandler(service services.RequirementService, validate *validator.Validate, log *zap.SugaredLogger) *RequirementHandler {
	return &RequirementHandler{service: service, validator: validate, log: log}
}

// CreateRequirement godoc
// @Summary      Request a pre-employment document
// @Description  Only applications that completed evaluation with a PASS result can collect requirements.
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        requirement body dto.CreateRequirementRequest true "Requirement to request"
// @Success      201  {object}  Response{data=dto.RequirementResponse} "Requirement created"
// @Failure      400  {object}  ErrorResponse "Application has not passed"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /requirements [post]
func (h *RequirementHandler) CreateRequirement(c *gin.Context) {
	var req dto.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	requirement, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Requirement requested successfully", newRequirementResponse(requirement))
}

// ListRequirements godoc
// @Summary      List an application's requirements
// @Description  Applicants may only read requirements of their own applications.
// @Tags         requirements
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response{data=[]dto.RequirementResponse} "Requirements"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Router       /applications/{id}/requirements [get]
func (h *RequirementHandler) ListRequirements(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	requirements, err := h.service.ListByApplication(c.Request.Context(), &dto.ListRequirementsRequest{
		ApplicationID: id,
		UserID:        userID,
		Role:          role,
	})
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	resp := make([]dto.RequirementResponse, 0, len(requirements))
	for _, requirement := range requirements {
		resp = append(resp, newRequirementResponse(requirement))
	}
	respond(c, http.StatusOK, "Requirements retrieved successfully", resp)
}

// SubmitRequirement godoc
// @Summary      Submit a requirement document
// @Description  Attaches the applicant's document descriptor and marks the requirement SUBMITTED.
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        id       path string                       true "Requirement ID" Format(uuid)
// @Param        document body dto.SubmitRequirementRequest true "Document descriptor"
// @Success      200  {object}  Response{data=dto.RequirementResponse} "Requirement submitted"
// @Failure      400  {object}  ErrorResponse "Requirement already verified"
// @Failure      403  {object}  ErrorResponse "Not the owning applicant"
// @Router       /requirements/{id}/submit [put]
func (h *RequirementHandler) SubmitRequirement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.SubmitRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	req.UserID = userID
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	requirement, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Requirement submitted successfully", newRequirementResponse(requirement))
}

// VerifyRequirement godoc
// @Summary      Verify a submitted requirement
// @Description  Marks the requirement VERIFIED or REJECTED with optional remarks and notifies the applicant.
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        id       path string                       true "Requirement ID" Format(uuid)
// @Param        decision body dto.VerifyRequirementRequest true "Verification decision"
// @Success      200  {object}  Response{data=dto.RequirementResponse} "Requirement reviewed"
// @Failure      400  {object}  ErrorResponse "Requirement not submitted"
// @Failure      404  {object}  ErrorResponse "Requirement Not Found"
// @Router       /requirements/{id}/verify [put]
func (h *RequirementHandler) VerifyRequirement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VerifyRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	requirement, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Requirement reviewed successfully", newRequirementResponse(requirement))
}

func newRequirementResponse(requirement *models.PreEmploymentRequirement) dto.RequirementResponse {
	resp := dto.RequirementResponse{
		ID:            requirement.ID,
		ApplicationID: requirement.ApplicationID,
		Name:          requirement.Name,
		Status:        requirement.Status,
		Remarks:       requirement.Remarks,
		CreatedAt:     requirement.CreatedAt,
		UpdatedAt:     requirement.UpdatedAt,
	}
	if len(requirement.Document) > 0 {
		var doc dto.DocumentDescriptor
		if err := json.Unmarshal(requirement.Document, &doc); err == nil {
			resp.Document = &doc
		}
	}
	return resp
}
