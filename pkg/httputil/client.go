package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wonny/divlens/backend/pkg/config"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// Client is a resty-backed HTTP client with request logging. It never
// retries: provider failures surface to the caller as-is.
// ⭐ SSOT: 모든 외부 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	rc     *resty.Client
	logger *logger.Logger
}

// Response is a fully-read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// StatusError reports a non-2xx response the caller could not interpret
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// NewStatusError builds a StatusError from resp, keeping a short body excerpt
func NewStatusError(url string, resp *Response) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		URL:        url,
		Body:       truncate(string(resp.Body), 256),
	}
}

// OK reports whether the response status is 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// New creates a new HTTP client from config
func New(cfg *config.Config, log *logger.Logger) *Client {
	rc := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if cfg.Yahoo.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.Yahoo.UserAgent)
	}

	return &Client{
		rc:     rc,
		logger: log.WithField("module", "httputil"),
	}
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(cfg *config.Config, log *logger.Logger, timeout time.Duration) *Client {
	client := New(cfg, log)
	client.rc.SetTimeout(timeout)
	return client
}

// Get performs a GET request and returns the full body regardless of status
func (c *Client) Get(ctx context.Context, url string, query map[string]string) (*Response, error) {
	start := time.Now()

	c.logger.WithFields(map[string]interface{}{
		"method": http.MethodGet,
		"url":    url,
	}).Debug("HTTP request started")

	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	duration := time.Since(start)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   http.MethodGet,
			"url":      url,
			"duration": duration,
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      http.MethodGet,
		"url":         url,
		"status_code": resp.StatusCode(),
		"duration":    duration,
	}).Debug("HTTP request completed")

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Duration:   duration,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
