package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and routes onto a fresh gin engine.
func NewRouter(agents *AgentHandler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(StripAuthHeadersMiddleware())
	router.Use(LoggingMiddleware(logger))

	router.POST("/create-agent", agents.HandleCreateAgent)
	router.GET("/health", agents.HandleHealth)

	return router
}
