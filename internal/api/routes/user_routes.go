package routes

import (
	"hiring-api/internal/api/handlers"
	"hiring-api/internal/api/middleware"
	"hiring-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all routes related to accounts and authentication
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		// Public authentication routes
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh", userHandler.Refresh)
	}

	protected := rg.Group("/users")
	protected.Use(authMiddleware)
	{
		protected.POST("/logout", userHandler.Logout)
		protected.GET("", middleware.RequireRoles(models.RoleAdmin), userHandler.GetUsers)
		protected.GET("/:id", userHandler.GetUserByID)
		protected.PUT("/:id", userHandler.UpdateUser)
		protected.DELETE("/:id", userHandler.DeleteUser)
	}
}
