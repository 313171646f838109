package contracts

import (
	"context"
	"fmt"
	"time"
)

// MarketDataGateway fetches raw dividend and price series for one ticker
// ⭐ SSOT: 외부 시세 제공자 인터페이스
type MarketDataGateway interface {
	// FetchCurrency returns the ticker's trading currency ("" when unknown)
	FetchCurrency(ctx context.Context, ticker string) (string, error)

	// FetchDividends returns the full dividend history, ascending
	FetchDividends(ctx context.Context, ticker string) ([]DividendEvent, error)

	// FetchPriceHistory returns daily closes covering at least [start, end)
	FetchPriceHistory(ctx context.Context, ticker string, start, end time.Time) ([]PriceBar, error)
}

// GatewayError is any provider failure: unreachable, unknown ticker,
// malformed response or timeout. It is never retried.
type GatewayError struct {
	Ticker string
	Op     string
	Err    error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ticker, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
