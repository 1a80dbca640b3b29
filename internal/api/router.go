package api

import (
	"net/http"

	"supply-demand/internal/api/handlers"
	"supply-demand/internal/api/middleware"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes for the market API. The returned
// func releases background resources (the sweep cache) and is safe to call
// more than once.
func NewRouter(cfg *config.Config, log *logger.Log) (*gin.Engine, func()) {
	router := gin.New()

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	if cfg.Server.RateLimit > 0 {
		router.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.Burst)))
	}

	evaluateHandler := handlers.NewEvaluateHandler(cfg, log)
	scenarioHandler := handlers.NewScenarioHandler(cfg, log)
	sweepHandler := handlers.NewSweepHandler(cfg, log)
	streamHandler := handlers.NewStreamHandler(cfg, log)
	parameterHandler := handlers.NewParameterHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/evaluate", evaluateHandler.Evaluate)
		api.POST("/sweep", sweepHandler.Sweep)
		api.GET("/stream", streamHandler.Stream)

		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/scenarios/:name", scenarioHandler.GetScenario)
		api.GET("/parameters", parameterHandler.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router, sweepHandler.Close
}
