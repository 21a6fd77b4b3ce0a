package handlers

import (
	"context"
	"net/http"

	"hiring-api/internal/models"
	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ApplicationHandler holds the service dependency for lifecycle operations
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
	log       *zap.SugaredLogger
}

// NewApplicationHandler creates a new ApplicationHandler with the given service
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate, log *zap.SugaredLogger) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate, log: log}
}

// CreateApplication godoc
// @Summary      Submit a new application
// @Description  Creates a PENDING application for the caller. Rejected when the caller already has a PENDING or APPROVED one.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body dto.CreateApplicationRequest true "Application to submit"
// @Success      201  {object}  Response{data=dto.ApplicationResponse} "Application submitted"
// @Failure      400  {object}  ErrorResponse "Bad Request - Invalid input"
// @Failure      409  {object}  ErrorResponse "Conflict - Active application exists"
// @Router       /applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ApplicantID = userID
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Application submitted successfully", dto.NewApplicationResponse(app))
}

// GetMyApplications godoc
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  Response{data=[]dto.ApplicationResponse} "Applications"
// @Router       /applications/my-applications [get]
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	apps, err := h.service.ListByApplicant(c.Request.Context(), userID)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	resp := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, dto.NewApplicationResponse(app))
	}
	respond(c, http.StatusOK, "Applications retrieved successfully", resp)
}

// GetMyActiveApplication godoc
// @Summary      Get the caller's active application
// @Description  Returns the caller's PENDING or APPROVED application, if any.
// @Tags         applications
// @Produce      json
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Active application"
// @Failure      404  {object}  ErrorResponse "No active application"
// @Router       /applications/my-active-application [get]
func (h *ApplicationHandler) GetMyActiveApplication(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	app, err := h.service.GetActiveByApplicant(c.Request.Context(), userID)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Active application retrieved successfully", dto.NewApplicationResponse(app))
}

// ListApplications godoc
// @Summary      List applications
// @Description  Paginated listing with optional status and program filters.
// @Tags         applications
// @Produce      json
// @Param        status  query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, COMPLETED)
// @Param        program query string false "Filter by program"
// @Param        limit   query int    false "Page size (default 20)"
// @Param        offset  query int    false "Page offset"
// @Success      200  {object}  Response{data=dto.ApplicationListResponse} "Applications"
// @Router       /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	apps, total, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}

	resp := dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Total:        total,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, dto.NewApplicationResponse(app))
	}
	respond(c, http.StatusOK, "Applications retrieved successfully", resp)
}

// GetApplicationByID godoc
// @Summary      Get an application by ID
// @Description  Applicants may only read their own applications.
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Application"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	app, err := h.service.GetByID(c.Request.Context(), &dto.GetApplicationRequest{
		ID:     id,
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Application retrieved successfully", dto.NewApplicationResponse(app))
}

// ListNotifications godoc
// @Summary      List an application's notification history
// @Description  Applicants may only read the audit trail of their own applications.
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response{data=[]dto.NotificationResponse} "Notifications"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id}/notifications [get]
func (h *ApplicationHandler) ListNotifications(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	notifications, err := h.service.ListNotifications(c.Request.Context(), &dto.GetApplicationRequest{
		ID:     id,
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, dto.NewNotificationResponse(n))
	}
	respond(c, http.StatusOK, "Notifications retrieved successfully", resp)
}

// ApproveApplication godoc
// @Summary      Approve an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path string                       true  "Application ID" Format(uuid)
// @Param        review body dto.ReviewApplicationRequest false "Optional HR notes"
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Application approved"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id}/approve [put]
func (h *ApplicationHandler) ApproveApplication(c *gin.Context) {
	h.review(c, h.service.Approve, "Application approved successfully")
}

// RejectApplication godoc
// @Summary      Reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path string                       true  "Application ID" Format(uuid)
// @Param        review body dto.ReviewApplicationRequest false "Optional HR notes"
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Application rejected"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id}/reject [put]
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	h.review(c, h.service.Reject, "Application rejected successfully")
}

func (h *ApplicationHandler) review(c *gin.Context, decide func(ctx context.Context, req *dto.ReviewApplicationRequest) (*models.Application, error), message string) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
			return
		}
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := decide(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, message, dto.NewApplicationResponse(app))
}

// ScheduleDemo godoc
// @Summary      Schedule a teaching demo
// @Description  Sets the demo slot for an approved application and notifies the applicant.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path string                 true "Application ID" Format(uuid)
// @Param        schedule body dto.ScheduleDemoRequest true "Demo slot"
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Demo scheduled"
// @Failure      400  {object}  ErrorResponse "Application not approved"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id}/schedule [put]
func (h *ApplicationHandler) ScheduleDemo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ScheduleDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := h.service.ScheduleDemo(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Demo scheduled successfully", dto.NewApplicationResponse(app))
}

// UpdateApplication godoc
// @Summary      Update an application
// @Description  HR patch over the mutable fields.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id          path string                       true "Application ID" Format(uuid)
// @Param        application body dto.UpdateApplicationRequest true "Fields to update"
// @Success      200  {object}  Response{data=dto.ApplicationResponse} "Application updated"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	app, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Application updated successfully", dto.NewApplicationResponse(app))
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID" Format(uuid)
// @Success      200  {object}  Response "Application deleted"
// @Failure      404  {object}  ErrorResponse "Application Not Found"
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Application deleted successfully", nil)
}
