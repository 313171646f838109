package dividends

import (
	"sort"

	"github.com/wonny/divlens/backend/internal/contracts"
)

// FilterEvents keeps events whose payment date lies in the inclusive window
// and returns them newest first. Input order does not matter.
func FilterEvents(events []contracts.DividendEvent, window contracts.DateRange) []contracts.DividendEvent {
	var start, end *int64
	if window.Start != nil {
		s := contracts.DateOf(*window.Start).Unix()
		start = &s
	}
	if window.End != nil {
		e := contracts.DateOf(*window.End).Unix()
		end = &e
	}

	filtered := make([]contracts.DividendEvent, 0, len(events))
	for _, ev := range events {
		day := contracts.DateOf(ev.PaymentDate).Unix()
		if start != nil && day < *start {
			continue
		}
		if end != nil && day > *end {
			continue
		}
		filtered = append(filtered, ev)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PaymentDate.After(filtered[j].PaymentDate)
	})
	return filtered
}
