package handlers

import (
	"net/http"

	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RubricHandler holds the service dependency for rubric management
type RubricHandler struct {
	service   services.ScoringService
	validator *validator.Validate
	log       *zap.SugaredLogger
}

// NewRubricHandler creates a new RubricHandler with the given service
func NewRubricHandler(service services.ScoringService, validate *validator.Validate, log *zap.SugaredLogger) *RubricHandler {
	return &RubricHandler{service: service, validator: validate, log: log}
}

// CreateRubric godoc
// @Summary      Create a rubric
// @Description  Adds a scoring criterion. MaxScore defaults to 10 and weight to 1.
// @Tags         rubrics
// @Accept       json
// @Produce      json
// @Param        rubric body dto.CreateRubricRequest true "Rubric to create"
// @Success      201  {object}  Response{data=dto.RubricResponse} "Rubric created"
// @Failure      400  {object}  ErrorResponse "Bad Request - Invalid input"
// @Router       /scoring/rubrics [post]
func (h *RubricHandler) CreateRubric(c *gin.Context) {
	var req dto.CreateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	rubric, err := h.service.CreateRubric(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Rubric created successfully", dto.NewRubricResponse(rubric))
}

// ListRubrics godoc
// @Summary      List rubrics
// @Tags         rubrics
// @Produce      json
// @Param        active query bool false "Only return active rubrics"
// @Success      200  {object}  Response{data=[]dto.RubricResponse} "Rubrics"
// @Router       /scoring/rubrics [get]
func (h *RubricHandler) ListRubrics(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	rubrics, err := h.service.ListRubrics(c.Request.Context(), activeOnly)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	resp := make([]dto.RubricResponse, 0, len(rubrics))
	for _, rubric := range rubrics {
		resp = append(resp, dto.NewRubricResponse(rubric))
	}
	respond(c, http.StatusOK, "Rubrics retrieved successfully", resp)
}

// GetRubricByID godoc
// @Summary      Get a rubric by ID
// @Tags         rubrics
// @Produce      json
// @Param        id   path      string  true  "Rubric ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.RubricResponse} "Rubric"
// @Failure      404  {object}  ErrorResponse "Rubric Not Found"
// @Router       /scoring/rubrics/{id} [get]
func (h *RubricHandler) GetRubricByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	rubric, err := h.service.GetRubric(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Rubric retrieved successfully", dto.NewRubricResponse(rubric))
}

// UpdateRubric godoc
// @Summary      Update a rubric
// @Tags         rubrics
// @Accept       json
// @Produce      json
// @Param        id     path string                  true "Rubric ID" Format(uuid)
// @Param        rubric body dto.UpdateRubricRequest true "Fields to update"
// @Success      200  {object}  Response{data=dto.RubricResponse} "Rubric updated"
// @Failure      404  {object}  ErrorResponse "Rubric Not Found"
// @Router       /scoring/rubrics/{id} [put]
func (h *RubricHandler) UpdateRubric(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	rubric, err := h.service.UpdateRubric(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Rubric updated successfully", dto.NewRubricResponse(rubric))
}

// DeleteRubric godoc
// @Summary      Delete or archive a rubric
// @Description  Rubrics referenced by scores are archived to preserve history; unreferenced ones are removed.
// @Tags         rubrics
// @Produce      json
// @Param        id   path      string  true  "Rubric ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.DeleteRubricResponse} "Rubric deleted or archived"
// @Failure      404  {object}  ErrorResponse "Rubric Not Found"
// @Router       /scoring/rubrics/{id} [delete]
func (h *RubricHandler) DeleteRubric(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	archived, err := h.service.DeleteRubric(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	message := "Rubric deleted successfully"
	if archived {
		message = "Rubric archived: existing scores reference it"
	}
	respond(c, http.StatusOK, message, dto.DeleteRubricResponse{ID: id, Archived: archived})
}
