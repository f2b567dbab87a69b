package report

import (
	"strings"
	"testing"
	"time"

	"github.com/qmops/beebot/internal/classify"
	"github.com/qmops/beebot/internal/trend"
)

var reportTime = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func line(m classify.Metric, sev classify.Severity, msg, url string, d trend.Direction) Line {
	return Line{
		Outcome: classify.Outcome{Metric: m, Severity: sev, Message: msg, URL: url},
		Trend:   d,
	}
}

func TestSlack_FormatsLinesWithGlyphsAndLinks(t *testing.T) {
	lines := []Line{
		line(classify.Payments, classify.Ok, "90/90", "https://admin/payments", trend.Up),
		line(classify.Site, classify.Ok, "is OK", "https://shop.example", trend.Unknown),
	}

	msg := Slack(lines, reportTime, false)

	if !strings.Contains(msg, "*Report Time: 14:30*") {
		t.Fatalf("missing report time header:\n%s", msg)
	}
	if !strings.Contains(msg, ":white_check_mark: <https://admin/payments|Validated payments>: 90/90 :arrow_upper_right:") {
		t.Fatalf("payments line wrong:\n%s", msg)
	}
	if strings.Contains(msg, "<!channel>") {
		t.Fatalf("no alert, channel must not be pinged:\n%s", msg)
	}
	if strings.Contains(msg, "TEST MODE") {
		t.Fatalf("test banner leaked into live message:\n%s", msg)
	}
}

func TestSlack_AlertPingsChannelAndEscapes(t *testing.T) {
	lines := []Line{
		line(classify.Email, classify.Alert, "40 < 75", "https://admin/vouchers", trend.Down),
	}

	msg := Slack(lines, reportTime, false)

	if !strings.Contains(msg, "<!channel>") {
		t.Fatalf("alert must ping the channel:\n%s", msg)
	}
	if !strings.Contains(msg, "40 &lt; 75") {
		t.Fatalf("message must escape < for Slack:\n%s", msg)
	}
	if !strings.Contains(msg, ":fire:") || !strings.Contains(msg, ":arrow_lower_right:") {
		t.Fatalf("glyphs wrong:\n%s", msg)
	}
	// the deep link's own < must survive
	if !strings.Contains(msg, "<https://admin/vouchers|Email check count>") {
		t.Fatalf("deep link broken:\n%s", msg)
	}
}

func TestSlack_TestModeBanner(t *testing.T) {
	msg := Slack(nil, reportTime, true)
	if !strings.HasPrefix(msg, ":test_tube: *TEST MODE") {
		t.Fatalf("missing test banner:\n%s", msg)
	}
}

func TestMail_ListsEveryMetric(t *testing.T) {
	lines := []Line{
		line(classify.Payments, classify.Ok, "90/90", "", trend.Flat),
		line(classify.Queue, classify.Alert, "is offline", "", trend.Unknown),
	}

	body := Mail(lines, reportTime)

	if !strings.Contains(body, "Report Time: 14:30") {
		t.Fatalf("missing header:\n%s", body)
	}
	if !strings.Contains(body, "✅ Validated payments: 90/90") {
		t.Fatalf("ok line wrong:\n%s", body)
	}
	if !strings.Contains(body, "🔥 Worker queue: is offline") {
		t.Fatalf("alert line wrong:\n%s", body)
	}
	if strings.Contains(body, ":white_check_mark:") {
		t.Fatalf("slack glyphs leaked into mail:\n%s", body)
	}
}

func TestHasAlert(t *testing.T) {
	if HasAlert([]Line{line(classify.Site, classify.Warning, "", "", trend.Unknown)}) {
		t.Fatal("warning is not an alert")
	}
	if !HasAlert([]Line{
		line(classify.Site, classify.Ok, "", "", trend.Unknown),
		line(classify.Queue, classify.Alert, "", "", trend.Unknown),
	}) {
		t.Fatal("alert not detected")
	}
}
