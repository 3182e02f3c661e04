package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/internal/handlers"
	"github.com/CHH01/runipet/internal/middleware"
)

func RegisterChallengeRoutes(r gin.IRouter) {
	challenges := r.Group("/challenges")
	challenges.Use(middleware.AuthMiddleware())
	{
		challenges.GET("", handlers.GetChallenges)
		challenges.POST("", handlers.CreateChallenge)
		challenges.POST("/init", handlers.InitChallenges)
		challenges.PUT("/:id/progress", handlers.UpdateChallengeProgress)
		challenges.POST("/:id/reward", handlers.ClaimChallengeReward)
	}
}
