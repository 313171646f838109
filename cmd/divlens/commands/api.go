package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/divlens/backend/internal/api"
	"github.com/wonny/divlens/backend/internal/api/handlers"
	"github.com/wonny/divlens/backend/internal/records"
	"github.com/wonny/divlens/backend/pkg/config"
	"github.com/wonny/divlens/backend/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `Starts the REST API server.

Endpoints:
  GET    /                      - Hello World
  GET    /items/{item_id}?q=    - Echo item
  GET    /health                - Health check (database)
  GET    /dividends/{ticker}    - Dividend yield report (start_date, end_date)
  POST   /dividends/bulk        - Reports for many tickers
  *      /evaluations[/{id}]    - Evaluation CRUD
  *      /results[/{id}]        - Result CRUD

Example:
  go run ./cmd/divlens api
  go run ./cmd/divlens api --port 9000`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== divlens API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := newLogger(cfg)

	log.WithFields(map[string]interface{}{
		"port":    cfg.Port,
		"env":     cfg.Env,
		"workers": cfg.Dividends.Workers,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Schema
	if cfg.Database.AutoMigrate {
		result, err := db.Migrate()
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		log.WithFields(map[string]interface{}{
			"version": result.Version,
			"applied": result.Applied,
		}).Info("Database schema ready")
	}

	// 5. Dividend pipeline
	pipeline := newPipeline(cfg, log)

	// 6. Handlers + router
	router := api.NewRouter(api.Handlers{
		Dividends:   handlers.NewDividendHandler(pipeline, log),
		Evaluations: handlers.NewEvaluationHandler(records.NewEvaluationRepository(db.Pool), log),
		Results:     handlers.NewResultHandler(records.NewResultRepository(db.Pool), log),
		Health:      db,
	}, log)

	// 7. Server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
