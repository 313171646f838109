package yahoo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/httputil"
)

// ErrNoData is returned when Yahoo has no series for the requested range
var ErrNoData = errors.New("no data")

// chartResponse is the v8 chart envelope
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *chartError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

type chartResult struct {
	Meta       chartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Events     *chartEvents    `json:"events"`
	Indicators chartIndicators `json:"indicators"`
}

type chartMeta struct {
	Currency  string `json:"currency"`
	Symbol    string `json:"symbol"`
	GMTOffset int64  `json:"gmtoffset"`
}

type chartEvents struct {
	Dividends map[string]chartDividend `json:"dividends"`
}

type chartIndicators struct {
	Quote []struct {
		Close []*float64 `json:"close"`
	} `json:"quote"`
}

type chartDividend struct {
	Amount json.Number `json:"amount"`
	Date   int64       `json:"date"`
}

// parseChart decodes a chart response. Yahoo reports unknown symbols and
// empty ranges through chart.error, usually with a 404.
func parseChart(endpoint string, resp *httputil.Response) (*chartResult, error) {
	var body chartResponse
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if !resp.OK() {
			return nil, httputil.NewStatusError(endpoint, resp)
		}
		return nil, fmt.Errorf("decode chart response: %w", err)
	}

	if body.Chart.Error != nil {
		if isNoDataError(body.Chart.Error) {
			return nil, fmt.Errorf("%w: %s", ErrNoData, body.Chart.Error.Error())
		}
		return nil, body.Chart.Error
	}
	if !resp.OK() {
		return nil, httputil.NewStatusError(endpoint, resp)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty chart result", ErrNoData)
	}

	return &body.Chart.Result[0], nil
}

func isNoDataError(e *chartError) bool {
	return strings.Contains(strings.ToLower(e.Description), "data doesn't exist")
}

// exchangeDate converts a Yahoo epoch to the exchange-local calendar date
func exchangeDate(ts, gmtOffset int64) time.Time {
	return contracts.DateOf(time.Unix(ts+gmtOffset, 0).UTC())
}
