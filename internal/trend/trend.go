// Package trend compares a metric's current value with the previous
// persisted run. Only count-vs-count comparisons carry a direction;
// booleans and missing data stay Unknown, which renders as no arrow.
package trend

import (
	"github.com/qmops/beebot/internal/classify"
	"github.com/qmops/beebot/internal/runstore"
)

type Direction int

const (
	Unknown Direction = iota
	Up
	Down
	Flat
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "increasing"
	case Down:
		return "decreasing"
	case Flat:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Compare resolves the metric's field in the previous run and compares
// counts. A nil previous run (first run, or database unavailable) yields
// Unknown for every metric.
func Compare(m classify.Metric, v classify.Value, prev *runstore.Run) Direction {
	if prev == nil || v.Kind != classify.KindCount {
		return Unknown
	}

	var last int
	switch m {
	case classify.Payments:
		last = prev.Payments
	case classify.PaidVouchers:
		last = prev.Vouchers
	case classify.PDF:
		last = prev.PDFCount
	case classify.Email:
		last = prev.EmailCount
	default:
		return Unknown
	}

	switch {
	case v.Count > last:
		return Up
	case v.Count < last:
		return Down
	default:
		return Flat
	}
}
