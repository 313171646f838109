package yahoo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/divlens/backend/internal/contracts"
)

const opPrices = "fetch prices"

// FetchPriceHistory returns daily closes whose exchange-local date is in
// [start, end). An empty range is not an error.
func (c *Client) FetchPriceHistory(ctx context.Context, ticker string, start, end time.Time) ([]contracts.PriceBar, error) {
	start, end = contracts.DateOf(start), contracts.DateOf(end)

	// bars are stamped at the local session open, which can fall on the
	// previous UTC day (NZX, ASX). pad by a day each side, trim by local date
	params := map[string]string{
		"period1":  strconv.FormatInt(start.AddDate(0, 0, -1).Unix(), 10),
		"period2":  strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10),
		"interval": "1d",
	}

	result, err := c.fetchChart(ctx, ticker, params)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			c.logger.WithField("ticker", ticker).Debug("No prices in range")
			return []contracts.PriceBar{}, nil
		}
		return nil, gatewayError(ticker, opPrices, err)
	}

	bars := parsePrices(result, start, end)

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(bars),
		"from":   start.Format(contracts.DateLayout),
		"to":     end.Format(contracts.DateLayout),
	}).Debug("Fetched prices")

	return bars, nil
}

// parsePrices pairs timestamps with closes, skipping null closes and bars
// dated outside [start, end)
func parsePrices(result *chartResult, start, end time.Time) []contracts.PriceBar {
	if len(result.Indicators.Quote) == 0 {
		return []contracts.PriceBar{}
	}
	closes := result.Indicators.Quote[0].Close

	bars := make([]contracts.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		date := exchangeDate(ts, result.Meta.GMTOffset)
		if date.Before(start) || !date.Before(end) {
			continue
		}
		bars = append(bars, contracts.PriceBar{
			Date:  date,
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}
	return bars
}
