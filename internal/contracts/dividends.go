package contracts

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date at UTC midnight.
// All dividend and price dates are compared in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DateRange is an inclusive calendar window; nil bounds are unbounded
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// DividendEvent is a single dividend payment reported by the provider
// ⭐ SSOT: 배당 이벤트 타입은 여기서만 정의
type DividendEvent struct {
	PaymentDate time.Time
	Amount      decimal.Decimal
	Currency    string
}

// PriceBar is one daily close
type PriceBar struct {
	Date  time.Time
	Close decimal.Decimal
}

// AlignedRecord is a dividend joined with the last close at or before its payment date.
// PricePerShare and DividendYield are invalid when no usable price exists.
type AlignedRecord struct {
	PaymentDate   time.Time
	Ticker        string
	Currency      string
	Dividend      decimal.Decimal
	PricePerShare decimal.NullDecimal
	DividendYield decimal.NullDecimal
}

type alignedRecordJSON struct {
	PaymentDate   string   `json:"payment_date"`
	Ticker        string   `json:"ticker"`
	Currency      string   `json:"currency"`
	Dividend      float64  `json:"dividend"`
	PricePerShare *float64 `json:"price_per_share"`
	DividendYield *float64 `json:"dividend_yield"`
}

// MarshalJSON renders numbers as plain JSON numbers; optional values are always
// present and null when absent.
func (r AlignedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(alignedRecordJSON{
		PaymentDate:   r.PaymentDate.Format(DateLayout),
		Ticker:        r.Ticker,
		Currency:      r.Currency,
		Dividend:      r.Dividend.InexactFloat64(),
		PricePerShare: nullableFloat(r.PricePerShare),
		DividendYield: nullableFloat(r.DividendYield),
	})
}

func nullableFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// TickerReport is the yield report for one ticker, newest payment first
type TickerReport struct {
	Ticker   string          `json:"ticker"`
	Currency string          `json:"currency"`
	Records  []AlignedRecord `json:"dividends"`
}

// MarshalJSON keeps an empty report's records as [] rather than null
func (r TickerReport) MarshalJSON() ([]byte, error) {
	type plain TickerReport
	if r.Records == nil {
		r.Records = []AlignedRecord{}
	}
	return json.Marshal(plain(r))
}

// TickerError records a ticker that failed inside a bulk request
type TickerError struct {
	Ticker string `json:"ticker"`
	Detail string `json:"detail"`
}

// BulkReport partitions a bulk request: every requested ticker lands in
// exactly one of Results or Errors, each in request order.
type BulkReport struct {
	Results []TickerReport `json:"results"`
	Errors  []TickerError  `json:"errors"`
}

// MarshalJSON keeps empty collections as [] rather than null
func (b BulkReport) MarshalJSON() ([]byte, error) {
	type plain BulkReport
	if b.Results == nil {
		b.Results = []TickerReport{}
	}
	if b.Errors == nil {
		b.Errors = []TickerError{}
	}
	return json.Marshal(plain(b))
}
