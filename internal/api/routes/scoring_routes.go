package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterScoringRoutes registers all routes related to evaluation and rubrics
func RegisterScoringRoutes(rg *gin.RouterGroup, scoringHandler *handlers.ScoringHandler, rubricHandler *handlers.RubricHandler, authMiddleware gin.HandlerFunc) {
	scoring := rg.Group("/scoring")
	scoring.Use(authMiddleware)

	staff := middleware.RequireRoles(models.RoleHR, models.RoleAdmin)
	{
		scoring.POST("/scores", staff, scoringHandler.RecordScore)
		scoring.PUT("/applications/:id/scores/:rubric_id", staff, scoringHandler.RecordScoreByPath)
		scoring.GET("/applications/:id/calculate", staff, scoringHandler.Calculate)
		scoring.POST("/applications/:id/complete", staff, scoringHandler.Complete)

		// Owner or staff; the service enforces ownership
		scoring.GET("/applications/:id/summary", scoringHandler.Summary)

		scoring.POST("/rubrics", staff, rubricHandler.CreateRubric)
		scoring.GET("/rubrics", staff, rubricHandler.ListRubrics)
		scoring.GET("/rubrics/:id", staff, rubricHandler.GetRubricByID)
		scoring.PUT("/rubrics/:id", staff, rubricHandler.UpdateRubric)
		scoring.DELETE("/rubrics/:id", staff, rubricHandler.DeleteRubric)
	}
}
