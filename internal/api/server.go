package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/divlens/backend/internal/api/handlers"
	"github.com/wonny/divlens/backend/pkg/config"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// Server represents the HTTP API server
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New creates a new API server
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout(cfg),
			IdleTimeout:  60 * time.Second,
		},
		logger: log,
		config: cfg,
	}
}

// writeTimeout leaves room for the largest bulk request: each worker takes
// its share of tickers at three gateway calls apiece
func writeTimeout(cfg *config.Config) time.Duration {
	workers := cfg.Dividends.Workers
	if workers < 1 {
		workers = 1
	}
	perWorker := (handlers.MaxBulkTickers + workers - 1) / workers
	if t := time.Duration(perWorker*3)*cfg.Dividends.GatewayTimeout + 15*time.Second; t > 15*time.Second {
		return t
	}
	return 15 * time.Second
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"port": s.config.Port,
		"env":  s.config.Env,
	}).Info("Starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
