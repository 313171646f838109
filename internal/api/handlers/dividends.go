package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// DividendService builds dividend yield reports
type DividendService interface {
	Run(ctx context.Context, ticker string, window contracts.DateRange) (*contracts.TickerReport, error)
	RunBulk(ctx context.Context, tickers []string, window contracts.DateRange) *contracts.BulkReport
}

// DividendHandler handles dividend report endpoints
// ⭐ SSOT: 배당 API 핸들러는 이 구조체에서만
type DividendHandler struct {
	service DividendService
	logger  *logger.Logger
}

// NewDividendHandler creates a new dividend handler
func NewDividendHandler(service DividendService, log *logger.Logger) *DividendHandler {
	return &DividendHandler{
		service: service,
		logger:  log,
	}
}

// MaxBulkTickers bounds one bulk request; keep in sync with the max tag below
const MaxBulkTickers = 100

// BulkDividendRequest is the POST /dividends/bulk body
type BulkDividendRequest struct {
	Tickers   []string `json:"tickers" validate:"required,max=100,dive,required"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

// GetDividendHistory returns the dividend yield report for one ticker
// GET /dividends/{ticker}?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *DividendHandler) GetDividendHistory(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	if strings.TrimSpace(ticker) == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	window, err := parseWindow(queryParam(r, "start_date"), queryParam(r, "end_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Run(r.Context(), ticker, window)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to build dividend report")
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to fetch dividend data for %s: %v", ticker, err))
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetBulkDividendHistory returns reports for many tickers. Per-ticker
// failures are listed under errors; the response is still 200.
// POST /dividends/bulk
func (h *DividendHandler) GetBulkDividendHistory(w http.ResponseWriter, r *http.Request) {
	var req BulkDividendRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := h.service.RunBulk(r.Context(), req.Tickers, window)

	h.logger.WithFields(map[string]interface{}{
		"tickers": len(req.Tickers),
		"success": len(report.Results),
		"failed":  len(report.Errors),
	}).Info("Bulk dividend request served")

	respondJSON(w, http.StatusOK, report)
}

func queryParam(r *http.Request, name string) *string {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 || values[0] == "" {
		return nil
	}
	return &values[0]
}

// parseWindow parses optional YYYY-MM-DD bounds
func parseWindow(start, end *string) (contracts.DateRange, error) {
	var window contracts.DateRange

	if start != nil && *start != "" {
		d, err := contracts.ParseDate(*start)
		if err != nil {
			return window, errors.New("invalid start_date: expected YYYY-MM-DD")
		}
		window.Start = &d
	}
	if end != nil && *end != "" {
		d, err := contracts.ParseDate(*end)
		if err != nil {
			return window, errors.New("invalid end_date: expected YYYY-MM-DD")
		}
		window.End = &d
	}
	return window, nil
}
