package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/contestguard/internal/app/controllers"
	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/app/models/dto"
	"github.com/yigit/contestguard/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	cheatController *controllers.CheatController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", healthController.Health)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	tests := authenticated.Group("/tests")
	tests.Use(authMiddleware.RolesRequired(models.RoleOrganizer, models.RoleAdmin))
	{
		tests.GET("/:testId/cheat-metrics", cheatController.GetCheatMetrics)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
		))
	})
}
