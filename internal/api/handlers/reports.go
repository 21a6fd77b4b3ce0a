package handlers

import (
	"net/http"

	"hiring-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler holds the service dependency for reporting
type ReportHandler struct {
	service services.ReportService
	log     *zap.SugaredLogger
}

// NewReportHandler creates a new ReportHandler with the given service
func NewReportHandler(service services.ReportService, log *zap.SugaredLogger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// Dashboard godoc
// @Summary      Hiring dashboard
// @Description  Status counts, month-over-month growth, per-program breakdown, average processing days and pass rate.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=dto.DashboardResponse} "Dashboard"
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
