package handlers

import (
	"net/http"

	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ScoringHandler holds the service dependency for evaluation operations
type ScoringHandler struct {
	service   services.ScoringService
	validator *validator.Validate
	log       *zap.SugaredLogger
}

// NewScoringHandler creates a new ScoringHandler with the given service
func NewScoringHandler(service services.ScoringService, validate *validator.Validate, log *zap.SugaredLogger) *ScoringHandler {
	return &ScoringHandler{service: service, validator: validate, log: log}
}

// RecordScore godoc
// @Summary      Record a rubric score
// @Description  Upserts one rubric score for an approved application. Re-scoring overwrites.
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        score body dto.RecordScoreRequest true "Score to record"
// @Success      200  {object}  Response{data=dto.ScoreResponse} "Score recorded"
// @Failure      400  {object}  ErrorResponse "Bad Request - Guard failed"
// @Failure      404  {object}  ErrorResponse "Application or rubric not found"
// @Router       /scoring/scores [post]
func (h *ScoringHandler) RecordScore(c *gin.Context) {
	var req dto.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.recordScore(c, &req)
}

// RecordScoreByPath godoc
// @Summary      Record a rubric score by path
// @Description  Path-addressed variant of score recording; same upsert semantics.
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        id        path string                 true "Application ID" Format(uuid)
// @Param        rubric_id path string                 true "Rubric ID" Format(uuid)
// @Param        score     body dto.RecordScoreRequest true "Score value and comments"
// @Success      200  {object}  Response{data=dto.ScoreResponse} "Score recorded"
// @Router       /scoring/applications/{id}/scores/{rubric_id} [put]
func (h *ScoringHandler) RecordScoreByPath(c *gin.Context) {
	appID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rubricID, ok := parseUUIDParam(c, "rubric_id")
	if !ok {
		return
	}

	var req dto.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ApplicationID = appID
	req.RubricID = rubricID
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.recordScore(c, &req)
}

func (h *ScoringHandler) recordScore(c *gin.Context, req *dto.RecordScoreRequest) {
	score, err := h.service.RecordScore(c.Request.Context(), req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Score recorded successfully", dto.ScoreResponse{
		ID:            score.ID,
		ApplicationID: score.ApplicationID,
		RubricID:      score.RubricID,
		ScoreValue:    score.ScoreValue,
		Comments:      score.Comments,
		UpdatedAt:     score.UpdatedAt,
	})
}

// Calculate godoc
// @Summary      Calculate the weighted result
// @Description  Aggregates the current scores into a percentage and PASS/FAIL without persisting anything.
// @Tags         scoring
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.ScoreCalculation} "Calculation"
// @Failure      400  {object}  ErrorResponse "No scores recorded"
// @Router       /scoring/applications/{id}/calculate [get]
func (h *ScoringHandler) Calculate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	calc, err := h.service.Calculate(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Score calculated successfully", calc)
}

// Complete godoc
// @Summary      Finalize the evaluation
// @Description  Persists the calculated result, marks the application COMPLETED and emails the applicant.
// @Tags         scoring
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response "Evaluation completed"
// @Failure      400  {object}  ErrorResponse "No scores recorded"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /scoring/applications/{id}/complete [post]
func (h *ScoringHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	app, calc, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Evaluation completed successfully", gin.H{
		"application": dto.NewApplicationResponse(app),
		"calculation": calc,
	})
}

// Summary godoc
// @Summary      Get the scoring summary
// @Description  Returns the application, its scores and the calculation. Applicants may only read their own.
// @Tags         scoring
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.ScoringSummaryResponse} "Summary"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Router       /scoring/applications/{id}/summary [get]
func (h *ScoringHandler) Summary(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), &dto.SummaryRequest{
		ApplicationID: id,
		UserID:        userID,
		Role:          role,
	})
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Scoring summary retrieved successfully", summary)
}
