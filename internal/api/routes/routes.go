package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/app"
	"hiring-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	router.Use(middleware.RequestLogger(app.Log))
	router.Use(middleware.Metrics())

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	//Create services
	userService := services.NewUserService(app.DB, app.RedisClient, app.Config.JWT.Secret, app.Config.JWT.AccessTTL, app.Config.JWT.RefreshTTL, app.Log)
	applicationService := services.NewApplicationService(app.DB, app.Dispatcher, app.Log)
	scoringService := services.NewScoringService(app.DB, app.Dispatcher, app.Config.Scoring.PassingThreshold, app.Log)
	reportService := services.NewReportService(app.DB, app.RedisClient, app.Log)
	requirementService := services.NewRequirementService(app.DB, app.Dispatcher, app.Log)

	//Create handlers
	userHandler := handlers.NewUserHandler(userService, app.Validator, app.Log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, app.Validator, app.Log)
	scoringHandler := handlers.NewScoringHandler(scoringService, app.Validator, app.Log)
	rubricHandler := handlers.NewRubricHandler(scoringService, app.Validator, app.Log)
	reportHandler := handlers.NewReportHandler(reportService, app.Log)
	requirementHandler := handlers.NewRequirementHandler(requirementService, app.Validator, app.Log)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret, app.Log)

	// --- Register Resource Routes ---
	RegisterUserRoutes(apiV1, userHandler, authMiddleware)
	RegisterApplicationRoutes(apiV1, applicationHandler, requirementHandler, authMiddleware)
	RegisterScoringRoutes(apiV1, scoringHandler, rubricHandler, authMiddleware)
	RegisterReportRoutes(apiV1, reportHandler, authMiddleware)
	RegisterRequirementRoutes(apiV1, requirementHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	// --- Prometheus Metrics ---
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
