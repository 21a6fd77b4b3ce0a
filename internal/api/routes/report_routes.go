package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes registers all routes related to reporting
func RegisterReportRoutes(rg *gin.RouterGroup, reportHandler *handlers.ReportHandler, authMiddleware gin.HandlerFunc) {
	reports := rg.Group("/reports")
	reports.Use(authMiddleware, middleware.RequireRoles(models.RoleHR, models.RoleAdmin))
	{
		reports.GET("/dashboard", reportHandler.Dashboard)
	}
}
