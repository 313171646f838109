package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/divlens/backend/internal/api/handlers"
	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/database"
	"github.com/wonny/divlens/backend/pkg/logger"
)

type stubDividends struct{}

func (stubDividends) Run(ctx context.Context, ticker string, window contracts.DateRange) (*contracts.TickerReport, error) {
	if ticker == "PANIC" {
		panic("boom")
	}
	return &contracts.TickerReport{Ticker: ticker, Currency: "USD"}, nil
}

func (stubDividends) RunBulk(ctx context.Context, tickers []string, window contracts.DateRange) *contracts.BulkReport {
	return &contracts.BulkReport{}
}

type stubHealth struct{ err error }

func (s stubHealth) HealthCheck(ctx context.Context) (*database.HealthStatus, error) {
	return &database.HealthStatus{Healthy: s.err == nil}, s.err
}

func newTestRouter(health handlers.HealthChecker) http.Handler {
	return NewRouter(Handlers{
		Dividends: handlers.NewDividendHandler(stubDividends{}, logger.Nop()),
		Health:    health,
	}, logger.Nop())
}

func TestRouter_Root(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/5?q=abc", nil))
	assert.JSONEq(t, `{"item_id":5,"q":"abc"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/5", nil))
	assert.JSONEq(t, `{"item_id":5,"q":null}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/five", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_BulkIsNotATicker(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dividends/bulk", nil)
	router.ServeHTTP(rec, req)
	// empty body is rejected by the bulk handler, not routed to {ticker}
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dividends/MSFT", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ticker":"MSFT","currency":"USD","dividends":[]}`, rec.Body.String())
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	newTestRouter(stubHealth{err: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRouter_RecoversPanics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dividends/PANIC", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
