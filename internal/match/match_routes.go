package match

import (
	"github.com/gin-gonic/gin"
)

// MatchRoutes sets up all match and scoring routes.
// guard runs in front of every route that changes a match; reads stay public.
func MatchRoutes(router *gin.RouterGroup, service *Service, defaultOvers int, guard ...gin.HandlerFunc) {
	matchController := NewMatchController(service, defaultOvers)

	// Public match routes
	matchRoutes := router.Group("/matches")
	{
		matchRoutes.GET("", matchController.GetMatches)
		matchRoutes.GET("/live", matchController.GetLiveMatches)
		matchRoutes.GET("/public/:link", matchController.GetMatchByPublicLink)
		matchRoutes.GET("/:id", matchController.GetMatchByID)

		matchRoutes.GET("/:id/current-over", matchController.GetCurrentOver)
		matchRoutes.GET("/:id/innings/:number", matchController.GetInnings)
		matchRoutes.GET("/:id/innings/:number/balls", matchController.GetBallEvents)
		matchRoutes.GET("/:id/innings/:number/audit", matchController.AuditInnings)
	}

	// Scorer routes
	scorerRoutes := router.Group("/matches")
	scorerRoutes.Use(guard...)
	{
		scorerRoutes.POST("", matchController.CreateMatch)
		scorerRoutes.PUT("/:id", matchController.UpdateMatch)
		scorerRoutes.PUT("/:id/players", matchController.UpdateMatchPlayers)
		scorerRoutes.DELETE("/:id", matchController.DeleteMatch)

		// Match status updates
		scorerRoutes.PUT("/:id/toss", matchController.SetToss)
		scorerRoutes.POST("/:id/start", matchController.StartMatch)
		scorerRoutes.POST("/:id/second-innings", matchController.StartSecondInnings)
		scorerRoutes.POST("/:id/abandon", matchController.AbandonMatch)

		// Ball-by-ball scoring
		scorerRoutes.POST("/:id/ball", matchController.RecordBall)
		scorerRoutes.POST("/:id/undo", matchController.UndoLastBall)
		scorerRoutes.POST("/:id/batter", matchController.SetBatter)
		scorerRoutes.POST("/:id/bowler", matchController.SetBowler)
		scorerRoutes.POST("/:id/swap", matchController.SwapBatters)
	}
}
