package yahoo

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/divlens/backend/internal/contracts"
)

const opDividends = "fetch dividends"

// FetchDividends returns the full dividend history, ascending by payment date.
// A ticker that exists but never paid returns an empty slice.
func (c *Client) FetchDividends(ctx context.Context, ticker string) ([]contracts.DividendEvent, error) {
	params := map[string]string{
		"period1":  "0",
		"period2":  strconv.FormatInt(time.Now().Unix(), 10),
		"interval": "1mo",
		"events":   "div",
	}

	result, err := c.fetchChart(ctx, ticker, params)
	if err != nil {
		return nil, gatewayError(ticker, opDividends, err)
	}

	events, err := parseDividends(result)
	if err != nil {
		return nil, gatewayError(ticker, opDividends, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(events),
	}).Debug("Fetched dividends")

	return events, nil
}

func parseDividends(result *chartResult) ([]contracts.DividendEvent, error) {
	if result.Events == nil || len(result.Events.Dividends) == 0 {
		return []contracts.DividendEvent{}, nil
	}

	events := make([]contracts.DividendEvent, 0, len(result.Events.Dividends))
	for key, div := range result.Events.Dividends {
		ts := div.Date
		if ts == 0 {
			parsed, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid dividend timestamp %q", key)
			}
			ts = parsed
		}

		amount, err := decimal.NewFromString(div.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("invalid dividend amount %q: %w", div.Amount, err)
		}

		events = append(events, contracts.DividendEvent{
			PaymentDate: exchangeDate(ts, result.Meta.GMTOffset),
			Amount:      amount,
			Currency:    result.Meta.Currency,
		})
	}

	// map iteration order is random
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PaymentDate.Before(events[j].PaymentDate)
	})
	return events, nil
}
