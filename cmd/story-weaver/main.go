package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"io.dreamcanvas.services/internal/config"
	"io.dreamcanvas.services/internal/handlers"
	"io.dreamcanvas.services/internal/logging"
	"io.dreamcanvas.services/internal/metrics"
	"io.dreamcanvas.services/internal/server"
)

const serviceName = "story-weaver"

func main() {
	cfg, err := config.Load(serviceName, config.StoryWeaverPort)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(serviceName, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	healthHandler := handlers.NewHealthHandler(serviceName, nil, cfg.DBHealthTimeout)

	router := server.NewRouter(cfg, logger, metrics.New(serviceName), func(r *gin.Engine) {
		r.GET("/generate", handlers.GenerateStory)
		r.GET("/health", healthHandler.Health)
	})

	if err := server.Run(cfg, router, logger); err != nil {
		logger.Fatalw("Server failed", "error", err)
	}
}
