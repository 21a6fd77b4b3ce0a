package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRequirementRoutes registers all routes related to pre-employment requirements
func RegisterRequirementRoutes(rg *gin.RouterGroup, requirementHandler *handlers.RequirementHandler, authMiddleware gin.HandlerFunc) {
	requirements := rg.Group("/requirements")
	requirements.Use(authMiddleware)
	{
		staff := middleware.RequireRoles(models.RoleHR, models.RoleAdmin)
		requirements.POST("", staff, requirementHandler.CreateRequirement)
		requirements.PUT("/:id/verify", staff, requirementHandler.VerifyRequirement)

		// Ownership is enforced by the service
		requirements.PUT("/:id/submit", middleware.RequireRoles(models.RoleApplicant), requirementHandler.SubmitRequirement)
	}
}
