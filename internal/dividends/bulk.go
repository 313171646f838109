package dividends

import (
	"context"
	"sync"

	"github.com/wonny/divlens/backend/internal/contracts"
)

// tickerOutcome holds exactly one of report or err
type tickerOutcome struct {
	report *contracts.TickerReport
	err    error
}

// RunBulk runs the per-ticker pipeline for every ticker and partitions the
// outcomes. A failing ticker never aborts the batch. Both collections keep
// request order regardless of how many workers ran.
func (p *Pipeline) RunBulk(ctx context.Context, tickers []string, window contracts.DateRange) *contracts.BulkReport {
	outcomes := make([]tickerOutcome, len(tickers))

	workers := p.config.Workers
	if workers > len(tickers) {
		workers = len(tickers)
	}

	p.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"workers": workers,
	}).Info("Starting bulk dividend report")

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = p.runOne(ctx, tickers[i], window)
			}
		}()
	}

	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &contracts.BulkReport{
		Results: make([]contracts.TickerReport, 0, len(tickers)),
		Errors:  make([]contracts.TickerError, 0),
	}
	for i, out := range outcomes {
		if out.err != nil {
			report.Errors = append(report.Errors, contracts.TickerError{
				Ticker: tickers[i],
				Detail: out.err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, *out.report)
	}

	p.logger.WithFields(map[string]interface{}{
		"success": len(report.Results),
		"failed":  len(report.Errors),
	}).Info("Bulk dividend report completed")

	return report
}

// runOne isolates a single ticker; Run already turns panics into errors
func (p *Pipeline) runOne(ctx context.Context, ticker string, window contracts.DateRange) tickerOutcome {
	report, err := p.Run(ctx, ticker, window)
	if err != nil {
		return tickerOutcome{err: err}
	}
	return tickerOutcome{report: report}
}
