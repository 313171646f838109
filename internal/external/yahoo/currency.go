package yahoo

import (
	"context"
	"fmt"
)

const opCurrency = "fetch currency"

type quoteOutcome struct {
	currency string
	err      error
}

// FetchCurrency returns the ticker's trading currency. The quote endpoint is
// tried first; when it fails the chart metadata is used instead.
// "" means the provider does not know.
func (c *Client) FetchCurrency(ctx context.Context, ticker string) (string, error) {
	currency, err := c.quoteCurrency(ctx, ticker)
	if err == nil && currency != "" {
		return currency, nil
	}
	if ctx.Err() != nil {
		return "", gatewayError(ticker, opCurrency, ctx.Err())
	}
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Debug("Quote lookup failed, using chart metadata")
	}

	result, chartErr := c.fetchChart(ctx, ticker, map[string]string{
		"range":    "1d",
		"interval": "1d",
	})
	if chartErr != nil {
		return "", gatewayError(ticker, opCurrency, chartErr)
	}
	return result.Meta.Currency, nil
}

// quoteCurrency runs the blocking finance-go lookup under ctx
func (c *Client) quoteCurrency(ctx context.Context, ticker string) (string, error) {
	done := make(chan quoteOutcome, 1)
	go func() {
		q, err := c.quoteFn(ticker)
		switch {
		case err != nil:
			done <- quoteOutcome{err: err}
		case q == nil:
			done <- quoteOutcome{err: fmt.Errorf("no quote for %s", ticker)}
		default:
			done <- quoteOutcome{currency: q.CurrencyID}
		}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case out := <-done:
		return out.currency, out.err
	}
}
