// Package report renders classified, trended outcomes into channel
// payloads. Composition is pure so it can be tested without delivery.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/qmops/beebot/internal/classify"
	"github.com/qmops/beebot/internal/trend"
)

// Line pairs one outcome with its trend against the previous run.
type Line struct {
	Outcome classify.Outcome
	Trend   trend.Direction
}

// HasAlert reports whether any metric is in Alert, which drives both the
// channel-wide mention and the email escalation.
func HasAlert(lines []Line) bool {
	for _, l := range lines {
		if l.Outcome.Severity == classify.Alert {
			return true
		}
	}
	return false
}

// Slack renders the chat message: one block per metric with severity
// glyph, trend arrow, a deep link to the source page and the message.
// "<" in messages is escaped for Slack mrkdwn.
func Slack(lines []Line, now time.Time, testMode bool) string {
	var b strings.Builder
	if testMode {
		b.WriteString(":test_tube: *TEST MODE — no live data*\n")
	}
	fmt.Fprintf(&b, "*Report Time: %s*\n\n", now.Format("15:04"))

	for _, l := range lines {
		o := l.Outcome
		name := o.Metric.String()
		if o.URL != "" {
			name = fmt.Sprintf("<%s|%s>", o.URL, name)
		}
		msg := strings.ReplaceAll(o.Message, "<", "&lt;")
		fmt.Fprintf(&b, "%s %s: %s%s\n", severityGlyph(o.Severity), name, msg, trendGlyph(l.Trend))
	}

	if HasAlert(lines) {
		b.WriteString("<!channel>")
	}
	return b.String()
}

// Mail renders the plain-text escalation body. The caller only sends it
// when HasAlert is true; the body itself always lists every metric.
func Mail(lines []Line, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report Time: %s\n\n", now.Format("15:04"))
	for _, l := range lines {
		o := l.Outcome
		fmt.Fprintf(&b, "%s %s: %s\n", mailGlyph(o.Severity), o.Metric, o.Message)
	}
	return b.String()
}

func severityGlyph(s classify.Severity) string {
	switch s {
	case classify.Ok:
		return ":white_check_mark:"
	case classify.Warning:
		return ":warning:"
	default:
		return ":fire:"
	}
}

func mailGlyph(s classify.Severity) string {
	switch s {
	case classify.Ok:
		return "✅"
	case classify.Warning:
		return "⚠️"
	default:
		return "🔥"
	}
}

func trendGlyph(d trend.Direction) string {
	switch d {
	case trend.Up:
		return " :arrow_upper_right:"
	case trend.Down:
		return " :arrow_lower_right:"
	default:
		return ""
	}
}
