// Package classify maps a metric snapshot to per-metric severities.
// Classification is pure: the same snapshot, policy and clock always
// produce the same outcomes, and nothing here performs I/O or errors.
// Missing data resolves to the most conservative outcome (Alert) with an
// explanatory message so the report is always complete.
package classify

import (
	"fmt"
	"time"

	"github.com/qmops/beebot/internal/extract"
)

// Severity of a single metric.
type Severity int

const (
	Ok Severity = iota
	Warning
	Alert
)

func (s Severity) String() string {
	switch s {
	case Ok:
		return "ok"
	case Warning:
		return "warning"
	default:
		return "alert"
	}
}

// Metric is the typed identifier of one monitored metric. It drives the
// trend lookup into the previous run record, replacing name-string
// dispatch with an explicit switch.
type Metric int

const (
	Payments Metric = iota
	PaidVouchers
	PDF
	Email
	Site
	Queue
)

func (m Metric) String() string {
	switch m {
	case Payments:
		return "Validated payments"
	case PaidVouchers:
		return "Paid vouchers"
	case PDF:
		return "PDF count"
	case Email:
		return "Email check count"
	case Site:
		return "Purchase website"
	case Queue:
		return "Worker queue"
	default:
		return "unknown"
	}
}

// Kind discriminates the comparable value carried by an outcome.
type Kind int

const (
	KindNone Kind = iota
	KindCount
	KindBool
)

// Value is a machine-comparable reading used for trending. KindNone means
// the source was unavailable and no comparison applies.
type Value struct {
	Kind  Kind
	Count int
	OK    bool
}

func CountValue(n int) Value { return Value{Kind: KindCount, Count: n} }
func BoolValue(ok bool) Value {
	return Value{Kind: KindBool, OK: ok}
}

// Outcome is one metric's classified result for a single run.
type Outcome struct {
	Metric   Metric
	Severity Severity
	Message  string
	Value    Value
	URL      string
}

const notAvailable = "not available"

// Classify produces one outcome per metric, in report order. now selects
// the day or night threshold.
func Classify(snap extract.Snapshot, p Policy, now time.Time) []Outcome {
	threshold := p.Active(now)

	return []Outcome{
		classifyPayments(snap, p, threshold),
		classifyPaidVouchers(snap, threshold),
		classifyAgainstDenominator(PDF, snap.PDFCount, snap.VouchersFetched, snap.NotImported, snap.VouchersURL, p, threshold),
		classifyAgainstDenominator(Email, snap.Email.Sent, snap.VouchersFetched, snap.NotImported, snap.VouchersURL, p, threshold),
		classifyBool(Site, snap.SiteFetched && snap.SiteOK, snap.SiteURL, "is OK", "is DOWN"),
		classifyBool(Queue, snap.QueueFetched && snap.QueueOK, snap.QueueURL, "is online", "is offline"),
	}
}

// classifyPayments judges the validated count against the expected daily
// total, with grouped payments excluded from that total: a grouped row is
// a repeat sale of a product already counted, so the effective maximum is
// 100 minus the grouped count.
func classifyPayments(snap extract.Snapshot, p Policy, threshold int) Outcome {
	if !snap.PaymentsFetched {
		return unavailable(Payments, snap.PaymentsURL)
	}
	denom := p.ExpectedPayments - snap.Payments.Grouped
	return classifyCount(Payments, snap.Payments.Validated, denom, snap.PaymentsURL, p, threshold)
}

// classifyAgainstDenominator covers PDF and email: the maximum possible
// count is the page's own not-imported row count, extracted alongside the
// metric. A zero denominator means there is no basis for a percentage.
func classifyAgainstDenominator(m Metric, value int, fetched bool, denom int, url string, p Policy, threshold int) Outcome {
	if !fetched {
		return unavailable(m, url)
	}
	return classifyCount(m, value, denom, url, p, threshold)
}

func classifyCount(m Metric, value, denom int, url string, p Policy, threshold int) Outcome {
	if denom <= 0 {
		return unavailable(m, url)
	}

	out := Outcome{Metric: m, Value: CountValue(value), URL: url}
	switch {
	case value*100 >= denom*p.OkCutoff:
		out.Severity = Ok
		out.Message = fmt.Sprintf("%d/%d", value, denom)
	case value*100 >= denom*threshold:
		out.Severity = Warning
		out.Message = fmt.Sprintf("%d < %d", value, denom*p.OkCutoff/100)
	default:
		out.Severity = Alert
		out.Message = fmt.Sprintf("%d < %d", value, denom*threshold/100)
	}
	return out
}

// classifyPaidVouchers is percentage based: every voucher row should be
// in the Paid state.
func classifyPaidVouchers(snap extract.Snapshot, threshold int) Outcome {
	if !snap.PaidVouchersFetched {
		return unavailable(PaidVouchers, snap.PaidVouchersURL)
	}
	v := snap.PaidVouchers
	total := v.Paid + v.Error + v.Other
	if total == 0 {
		return unavailable(PaidVouchers, snap.PaidVouchersURL)
	}

	pct := v.Paid * 100 / total
	out := Outcome{Metric: PaidVouchers, Value: CountValue(v.Paid), URL: snap.PaidVouchersURL}
	switch {
	case pct == 100:
		out.Severity = Ok
		out.Message = fmt.Sprintf("%d/%d paid", v.Paid, total)
	case pct > threshold:
		out.Severity = Warning
		out.Message = fmt.Sprintf("%d%% paid (%d/%d)", pct, v.Paid, total)
	default:
		out.Severity = Alert
		out.Message = fmt.Sprintf("%d%% paid (%d/%d)", pct, v.Paid, total)
	}
	return out
}

func classifyBool(m Metric, ok bool, url, okMsg, downMsg string) Outcome {
	if ok {
		return Outcome{Metric: m, Severity: Ok, Message: okMsg, Value: BoolValue(true), URL: url}
	}
	return Outcome{Metric: m, Severity: Alert, Message: downMsg, Value: BoolValue(false), URL: url}
}

func unavailable(m Metric, url string) Outcome {
	return Outcome{Metric: m, Severity: Alert, Message: notAvailable, Value: Value{Kind: KindNone}, URL: url}
}
