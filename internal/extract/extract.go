// Package extract turns fetched dashboard pages into one metric snapshot
// per run. Selectors are fixed: the admin pages render django-style tables
// with td.field-* cells, and the storefront is recognised by its heading.
// Malformed or missing structure degrades to zero values, never to an error.
package extract

import (
	"golang.org/x/net/html"

	"github.com/qmops/beebot/internal/fetch"
)

// PaymentCounts breaks the day's payments down by state. A product code seen
// on an earlier row marks later rows as Grouped instead of double-counting
// a distinct state; codes are assumed unique per run and row order stable.
type PaymentCounts struct {
	Validated    int
	ToValidate   int
	ThreeDSecure int
	Cancelled    int
	Error        int
	Grouped      int
}

// VoucherCounts breaks paid vouchers down by state cell.
type VoucherCounts struct {
	Paid  int
	Error int
	Other int
}

// EmailCounts breaks the notification-sent column down.
type EmailCounts struct {
	Sent    int
	NotSent int
	Bulk    int
}

// Snapshot is the full set of extracted values for one run. Per-source
// Fetched flags distinguish "page unavailable" from genuine zeros; the
// classifier must never read an unfetched source's counts as data.
type Snapshot struct {
	Payments        PaymentCounts
	PaymentsURL     string
	PaymentsFetched bool

	PDFCount        int
	Email           EmailCounts
	NotImported     int // denominator for PDF/email percentage thresholds
	VouchersURL     string
	VouchersFetched bool

	PaidVouchers        VoucherCounts
	PaidVouchersURL     string
	PaidVouchersFetched bool

	SiteOK      bool
	SiteURL     string
	SiteFetched bool

	QueueOK      bool
	QueueURL     string
	QueueFetched bool
}

// Parse scans every known source present in the page map. Sources absent
// from the map keep their zero values with Fetched left false.
func Parse(pages map[fetch.Key]fetch.Page, siteHeading string) Snapshot {
	var snap Snapshot

	if p, ok := pages[fetch.Payments]; ok {
		snap.Payments = scanPayments(p.Body)
		snap.PaymentsURL = p.URL
		snap.PaymentsFetched = true
	}

	if p, ok := pages[fetch.Vouchers]; ok {
		doc := parseHTML(p.Body)
		snap.PDFCount = countCells(doc, "field-has_pdf", "Yes")
		snap.Email = scanEmail(doc)
		snap.NotImported = countCells(doc, "field-imported_from", "not imported")
		snap.VouchersURL = p.URL
		snap.VouchersFetched = true
	}

	if p, ok := pages[fetch.PaidVouchers]; ok {
		snap.PaidVouchers = scanPaidVouchers(p.Body)
		snap.PaidVouchersURL = p.URL
		snap.PaidVouchersFetched = true
	}

	if p, ok := pages[fetch.Site]; ok {
		snap.SiteOK = hasHeading(parseHTML(p.Body), siteHeading)
		snap.SiteURL = p.URL
		snap.SiteFetched = true
	}

	if p, ok := pages[fetch.Queue]; ok {
		snap.QueueOK = allWorkersOnline(parseHTML(p.Body))
		snap.QueueURL = p.URL
		snap.QueueFetched = true
	}

	return snap
}

func scanPayments(body []byte) PaymentCounts {
	var c PaymentCounts
	seen := make(map[string]bool)

	for _, row := range tableRows(parseHTML(body)) {
		state := cellText(row, "field-state")
		if state == "" {
			continue
		}
		code := cellText(row, "field-product")
		if code != "" && seen[code] {
			c.Grouped++
			continue
		}
		if code != "" {
			seen[code] = true
		}

		switch state {
		case "Validated":
			c.Validated++
		case "To validate":
			c.ToValidate++
		case "3D Secure":
			c.ThreeDSecure++
		case "Cancelled":
			c.Cancelled++
		case "Error":
			c.Error++
		}
	}
	return c
}

func scanPaidVouchers(body []byte) VoucherCounts {
	var c VoucherCounts
	for _, state := range cellTexts(parseHTML(body), "field-state") {
		switch state {
		case "Paid":
			c.Paid++
		case "Error":
			c.Error++
		default:
			c.Other++
		}
	}
	return c
}

func scanEmail(doc *html.Node) EmailCounts {
	var c EmailCounts
	for _, v := range cellTexts(doc, "field-_has_been_sent") {
		switch v {
		case "Yes":
			c.Sent++
		case "Bulk":
			c.Bulk++
		default:
			c.NotSent++
		}
	}
	return c
}

// allWorkersOnline requires at least one status cell and every one of them
// reading Online; a single offline worker marks the queue unhealthy.
func allWorkersOnline(doc *html.Node) bool {
	cells := cellTexts(doc, "field-status")
	if len(cells) == 0 {
		return false
	}
	for _, v := range cells {
		if v != "Online" {
			return false
		}
	}
	return true
}
