package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to applications
func RegisterApplicationRoutes(rg *gin.RouterGroup, applicationHandler *handlers.ApplicationHandler, requirementHandler *handlers.RequirementHandler, authMiddleware gin.HandlerFunc) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		// Applicant-facing routes
		applications.POST("", middleware.RequireRoles(models.RoleApplicant), applicationHandler.CreateApplication)
		applications.GET("/my-applications", middleware.RequireRoles(models.RoleApplicant), applicationHandler.GetMyApplications)
		applications.GET("/my-active-application", middleware.RequireRoles(models.RoleApplicant), applicationHandler.GetMyActiveApplication)

		// Owner or staff; the service enforces ownership
		applications.GET("/:id", applicationHandler.GetApplicationByID)
		applications.GET("/:id/requirements", requirementHandler.ListRequirements)
		applications.GET("/:id/notifications", applicationHandler.ListNotifications)

		// Staff routes
		staff := middleware.RequireRoles(models.RoleHR, models.RoleAdmin)
		applications.GET("", staff, applicationHandler.ListApplications)
		applications.PUT("/:id/approve", staff, applicationHandler.ApproveApplication)
		applications.PUT("/:id/reject", staff, applicationHandler.RejectApplication)
		applications.PUT("/:id/schedule", staff, applicationHandler.ScheduleDemo)
		applications.PUT("/:id", staff, applicationHandler.UpdateApplication)
		applications.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), applicationHandler.DeleteApplication)
	}
}
