package dividends

import (
	"sort"
	"time"

	"github.com/wonny/divlens/backend/internal/contracts"
)

// PriceSeries is an ascending, duplicate-free daily close series
// supporting as-of lookups.
type PriceSeries struct {
	bars []contracts.PriceBar
}

// NewPriceSeries canonicalizes bars: dates are truncated to the calendar day,
// sorted ascending (stable), and for duplicate dates the last bar in the
// input sequence wins.
func NewPriceSeries(bars []contracts.PriceBar) *PriceSeries {
	sorted := make([]contracts.PriceBar, len(bars))
	for i, b := range bars {
		sorted[i] = contracts.PriceBar{Date: contracts.DateOf(b.Date), Close: b.Close}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	deduped := sorted[:0]
	for _, b := range sorted {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	return &PriceSeries{bars: deduped}
}

// Len returns the number of distinct trading days
func (s *PriceSeries) Len() int {
	return len(s.bars)
}

// AsOf returns the bar with the latest date on or before date.
// ok is false when the series is empty or date precedes every bar.
func (s *PriceSeries) AsOf(date time.Time) (bar contracts.PriceBar, ok bool) {
	day := contracts.DateOf(date)

	// first index strictly after day
	idx := sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].Date.After(day)
	})
	if idx == 0 {
		return contracts.PriceBar{}, false
	}
	return s.bars[idx-1], true
}

// Align is a one-shot as-of lookup over raw bars
func Align(date time.Time, bars []contracts.PriceBar) (contracts.PriceBar, bool) {
	return NewPriceSeries(bars).AsOf(date)
}
