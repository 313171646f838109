package commands

import (
	"github.com/wonny/divlens/backend/internal/dividends"
	"github.com/wonny/divlens/backend/internal/external/yahoo"
	"github.com/wonny/divlens/backend/pkg/config"
	"github.com/wonny/divlens/backend/pkg/httputil"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// newLogger builds the process logger, honoring --verbose
func newLogger(cfg *config.Config) *logger.Logger {
	if verbose {
		cfg.LogLevel = "debug"
	}
	return logger.New(cfg)
}

// newPipeline wires the Yahoo gateway into a dividend pipeline
func newPipeline(cfg *config.Config, log *logger.Logger) *dividends.Pipeline {
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Dividends.GatewayTimeout)
	gateway := yahoo.NewClient(httpClient, cfg.Yahoo.ChartURL, log)

	return dividends.NewPipeline(gateway, dividends.Config{
		Workers:         cfg.Dividends.Workers,
		GatewayTimeout:  cfg.Dividends.GatewayTimeout,
		DefaultCurrency: cfg.Dividends.DefaultCurrency,
	}, log)
}
