package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/httputil"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// QuoteFunc looks up a single quote (finance-go's quote.Get by default)
type QuoteFunc func(symbol string) (*finance.Quote, error)

// Client is the Yahoo Finance market data gateway
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	chartURL   string
	quoteFn    QuoteFunc
}

var _ contracts.MarketDataGateway = (*Client)(nil)

// Option customizes a Client
type Option func(*Client)

// WithQuoteFunc replaces the quote lookup used for currency
func WithQuoteFunc(fn QuoteFunc) Option {
	return func(c *Client) {
		c.quoteFn = fn
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, chartURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "yahoo"),
		chartURL:   strings.TrimRight(chartURL, "/"),
		quoteFn:    quote.Get,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetchChart calls the v8 chart endpoint and returns the single result
func (c *Client) fetchChart(ctx context.Context, ticker string, params map[string]string) (*chartResult, error) {
	endpoint := fmt.Sprintf("%s/%s", c.chartURL, url.PathEscape(ticker))

	resp, err := c.httpClient.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	return parseChart(endpoint, resp)
}

func gatewayError(ticker, op string, err error) error {
	var gwErr *contracts.GatewayError
	if errors.As(err, &gwErr) {
		return err
	}
	return &contracts.GatewayError{Ticker: ticker, Op: op, Err: err}
}
