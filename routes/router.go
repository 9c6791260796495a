package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/crease/internal/live"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/middleware"
)

// Options carries the pieces the router exposes.
type Options struct {
	Service      *match.Service
	Hub          *live.Hub
	DefaultOvers int
	FrontendURL  string
	// ScorerSecret enables bearer-token checks on scoring routes when set.
	ScorerSecret string
	ScorerRoles  []string
}

func SetupRoutes(opts Options) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if opts.FrontendURL == "" || opts.FrontendURL == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{opts.FrontendURL}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	var guard []gin.HandlerFunc
	if opts.ScorerSecret != "" {
		guard = append(guard, middleware.ScorerAuth(opts.ScorerSecret), middleware.RequireRole(opts.ScorerRoles...))
	}
	match.MatchRoutes(api, opts.Service, opts.DefaultOvers, guard...)

	// Live score subscriptions
	if opts.Hub != nil {
		r.GET("/ws/matches/:id", opts.Hub.ServeMatch(opts.Service))
	}

	return r
}
