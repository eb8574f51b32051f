package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voting-service/internal/server/handlers"
	"voting-service/internal/server/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, jwtSecret string, pollHandler *handlers.PollHandler, voteHandler *handlers.VoteHandler, resultsHandler *handlers.ResultsHandler) {
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route (Kubernetes probes)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.GET("/polls/:poll_id/results", resultsHandler.GetResults)
	}

	// Protected routes (require JWT authentication)
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		protected.POST("/polls", pollHandler.CreatePoll)
		protected.POST("/polls/:poll_id/vote", voteHandler.SubmitVote)
		protected.GET("/polls/:poll_id/voted", voteHandler.HasVoted)
	}
}
