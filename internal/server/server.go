// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP boundary: JSON endpoints for evaluation and
// performance testing, the in-memory history with report downloads, and the
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/history"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Evaluator scores an idea. Implementations never fail.
type Evaluator interface {
	Evaluate(ctx context.Context, idea types.InnovationIdea) types.EvaluationResult
}

// PromptTester runs one performance round trip.
type PromptTester interface {
	TestPromptPerformance(ctx context.Context, promptLength int) (types.PromptTestResult, error)
}

// Server holds the collaborators behind the HTTP routes. A nil Evaluator or
// Tester means the model credential is not configured; the matching routes
// answer 500.
type Server struct {
	Evaluator Evaluator
	Tester    PromptTester
	History   *history.Store
	Perf      types.PerfConfig
	Logger    *zap.Logger

	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer

	Now func() time.Time
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logging.OrNop(s.Logger), "/healthz", "/metrics"))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.OrNop(s.Logger).Error("handler panicked",
			zap.String("path", c.FullPath()), zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	g := s.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/evaluate", s.handleEvaluate)
	api.POST("/test-performance", s.handleTestPerformance)
	api.POST("/test-performance/suite", s.handleTestSuite)
	api.GET("/evaluations", s.handleListEvaluations)
	api.GET("/evaluations/:id/report", s.handleReport)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.OrNop(s.Logger).Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.OrNop(s.Logger).Info("http server stopped")
	return nil
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// requestLogger logs one line per request, skipping the given paths.
func requestLogger(logger *zap.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipped[p] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if skipped[c.Request.URL.Path] {
			return
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
