package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	catalogService service.CatalogService,
	planService service.PlanService,
	sessionService service.SessionService,
) {
	authHandler := NewAuthHandler(authService)
	catalogHandler := NewCatalogHandler(catalogService)
	planHandler := NewPlanHandler(planService)
	sessionHandler := NewSessionHandler(sessionService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Catalog (read-only) ---
		protected.GET("/exercises", catalogHandler.ListExercises)
		protected.GET("/muscle-groups", catalogHandler.ListMuscleGroups)
		protected.GET("/templates", catalogHandler.ListTemplates)

		// --- Plan ---
		planGroup := protected.Group("/plan")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlan)
			planGroup.POST("/days/:dayId/exercises", planHandler.AddExercise)
			planGroup.PUT("/exercises/:dayExerciseId", planHandler.UpdateExercise)
			planGroup.DELETE("/exercises/:dayExerciseId", planHandler.RemoveExercise)
		}

		// --- Session (reconciled view + mutations that refresh it) ---
		sessionGroup := protected.Group("/session")
		{
			sessionGroup.GET("/view", sessionHandler.View)
			sessionGroup.POST("/toggle", sessionHandler.ToggleSet)
			sessionGroup.PUT("/exercises/:dayExerciseId/swap", sessionHandler.SwapExercise)
			sessionGroup.PUT("/days/:dayId/swap-template", sessionHandler.SwapTemplate)
			sessionGroup.GET("/exercises/:dayExerciseId/candidates", sessionHandler.Candidates)
		}
	}
}
