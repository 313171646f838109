package dividends

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// Pipeline stages that can fail
const (
	StageCurrency  = "fetch currency"
	StageDividends = "fetch dividends"
	StagePrices    = "fetch prices"
	StagePipeline  = "pipeline"
)

// PipelineError tags a per-ticker failure with the stage that raised it.
// Err is always a *contracts.GatewayError.
type PipelineError struct {
	Ticker string
	Stage  string
	Err    error
}

func (e *PipelineError) Error() string {
	return e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Config tunes a Pipeline
type Config struct {
	Workers         int           // bulk worker pool size; 1 is strictly sequential
	GatewayTimeout  time.Duration // per gateway call; 0 disables
	DefaultCurrency string
}

// Pipeline joins dividend history with daily closes into yield reports
// ⭐ SSOT: 배당/가격 조인 파이프라인은 여기서만
type Pipeline struct {
	gateway contracts.MarketDataGateway
	config  Config
	logger  *logger.Logger
}

// NewPipeline creates a pipeline over the given gateway
func NewPipeline(gateway contracts.MarketDataGateway, cfg Config, log *logger.Logger) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	return &Pipeline{
		gateway: gateway,
		config:  cfg,
		logger:  log.WithField("module", "dividends"),
	}
}

// Run builds the report for one ticker. Any gateway failure, including a
// panic, aborts the ticker and is returned as *PipelineError; no partial
// report is returned.
func (p *Pipeline) Run(ctx context.Context, ticker string, window contracts.DateRange) (report *contracts.TickerReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, p.fail(ticker, StagePipeline, fmt.Errorf("panic: %v", r))
		}
	}()
	return p.run(ctx, ticker, window)
}

func (p *Pipeline) run(ctx context.Context, ticker string, window contracts.DateRange) (*contracts.TickerReport, error) {
	log := p.logger.WithField("ticker", ticker)

	// 1. currency
	var currency string
	err := p.call(ctx, func(callCtx context.Context) error {
		var err error
		currency, err = p.gateway.FetchCurrency(callCtx, ticker)
		return err
	})
	if err != nil {
		return nil, p.fail(ticker, StageCurrency, err)
	}
	if currency == "" {
		currency = p.config.DefaultCurrency
	}

	// 2. dividends
	var events []contracts.DividendEvent
	err = p.call(ctx, func(callCtx context.Context) error {
		var err error
		events, err = p.gateway.FetchDividends(callCtx, ticker)
		return err
	})
	if err != nil {
		return nil, p.fail(ticker, StageDividends, err)
	}

	report := &contracts.TickerReport{
		Ticker:   ticker,
		Currency: currency,
		Records:  []contracts.AlignedRecord{},
	}
	if len(events) == 0 {
		log.Debug("No dividend history")
		return report, nil
	}

	// 3-4. window filter
	filtered := FilterEvents(events, window)
	if len(filtered) == 0 {
		log.Debug("No dividends in requested window")
		return report, nil
	}

	// 5-6. prices over [oldest, newest + 1 day)
	start := contracts.DateOf(filtered[len(filtered)-1].PaymentDate)
	end := contracts.DateOf(filtered[0].PaymentDate).AddDate(0, 0, 1)

	var bars []contracts.PriceBar
	err = p.call(ctx, func(callCtx context.Context) error {
		var err error
		bars, err = p.gateway.FetchPriceHistory(callCtx, ticker, start, end)
		return err
	})
	if err != nil {
		return nil, p.fail(ticker, StagePrices, err)
	}
	series := NewPriceSeries(bars)

	// 7. align + yield, newest first
	report.Records = make([]contracts.AlignedRecord, 0, len(filtered))
	for _, ev := range filtered {
		report.Records = append(report.Records, buildRecord(ticker, currency, ev, series))
	}

	log.WithFields(map[string]interface{}{
		"records": len(report.Records),
		"bars":    series.Len(),
		"from":    start.Format(contracts.DateLayout),
		"to":      end.Format(contracts.DateLayout),
	}).Debug("Dividend report built")

	return report, nil
}

func buildRecord(ticker, currency string, ev contracts.DividendEvent, series *PriceSeries) contracts.AlignedRecord {
	record := contracts.AlignedRecord{
		PaymentDate: contracts.DateOf(ev.PaymentDate),
		Ticker:      ticker,
		Currency:    currency,
		Dividend:    RoundDividend(ev.Amount),
	}

	if bar, ok := series.AsOf(ev.PaymentDate); ok {
		price := decimal.NewNullDecimal(RoundPrice(bar.Close))
		record.PricePerShare = price
		record.DividendYield = ComputeYield(record.Dividend, price)
	}
	return record
}

// call runs one gateway call under the per-call timeout
func (p *Pipeline) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.config.GatewayTimeout <= 0 {
		return fn(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.config.GatewayTimeout)
	defer cancel()

	err := fn(callCtx)
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("timed out after %s: %w", p.config.GatewayTimeout, err)
	}
	return err
}

// fail wraps err as a gateway failure for ticker at stage
func (p *Pipeline) fail(ticker, stage string, err error) error {
	var gwErr *contracts.GatewayError
	if !errors.As(err, &gwErr) {
		err = &contracts.GatewayError{Ticker: ticker, Op: stage, Err: err}
	}

	p.logger.WithError(err).WithFields(map[string]interface{}{
		"ticker": ticker,
		"stage":  stage,
	}).Warn("Dividend pipeline failed")

	return &PipelineError{Ticker: ticker, Stage: stage, Err: err}
}
