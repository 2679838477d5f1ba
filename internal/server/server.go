package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.dreamcanvas.services/internal/config"
	"io.dreamcanvas.services/internal/metrics"
	"io.dreamcanvas.services/internal/middleware"
)

// NewRouter builds the gin engine shared by every service: middleware chain,
// /metrics, JSON 404 and 405 answers, and whatever routes register adds.
func NewRouter(cfg *config.Config, logger *zap.SugaredLogger, m *metrics.Metrics, register func(r *gin.Engine)) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggingMiddleware(logger),
		middleware.MetricsMiddleware(m),
		// After logging and metrics: a recovered panic reaches both as a 500
		middleware.RecoveryMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	register(router)

	return router
}

// Run serves handler on cfg.Addr() until SIGINT/SIGTERM, then shuts down gracefully
func Run(cfg *config.Config, handler http.Handler, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, cfg, handler, logger)
}

// Serve runs the HTTP server until ctx is done
func Serve(ctx context.Context, cfg *config.Config, handler http.Handler, logger *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Infow("server exited")
	return nil
}
