package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"io.dreamcanvas.services/internal/config"
	"io.dreamcanvas.services/internal/db"
	"io.dreamcanvas.services/internal/handlers"
	"io.dreamcanvas.services/internal/logging"
	"io.dreamcanvas.services/internal/metrics"
	"io.dreamcanvas.services/internal/server"
	"io.dreamcanvas.services/internal/store"
)

const serviceName = "user-portfolio"

func main() {
	cfg, err := config.Load(serviceName, config.UserPortfolioPort)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(serviceName, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The pool dials lazily; a missing database only means sample data
	postgresDB, err := db.InitPostgres(context.Background(), cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Fatalw("Failed to initialize PostgreSQL", "error", err)
	}
	defer postgresDB.Close()

	dreamStore := store.NewPostgres(postgresDB, cfg.DBQueryTimeout)
	m := metrics.New(serviceName)

	portfolioHandler := handlers.NewPortfolioHandler(dreamStore, logger, m)
	healthHandler := handlers.NewHealthHandler(serviceName, dreamStore, cfg.DBHealthTimeout)

	router := server.NewRouter(cfg, logger, m, func(r *gin.Engine) {
		r.GET("/user/:id/dreams", portfolioHandler.ListUserDreams)
		r.GET("/health", healthHandler.Health)
	})

	if err := server.Run(cfg, router, logger); err != nil {
		logger.Fatalw("Server failed", "error", err)
	}
}
