package extract

import (
	"testing"

	"github.com/qmops/beebot/internal/fetch"
)

const paymentsHTML = `<html><body><table>
<tr><td class="field-state">Validated</td><td class="field-product">A1</td></tr>
<tr><td class="field-state">Validated</td><td class="field-product">A2</td></tr>
<tr><td class="field-state">To validate</td><td class="field-product">A3</td></tr>
<tr><td class="field-state">3D Secure</td><td class="field-product">A4</td></tr>
<tr><td class="field-state">Cancelled</td><td class="field-product">A5</td></tr>
<tr><td class="field-state">Error</td><td class="field-product">A6</td></tr>
<tr><td class="field-state">Validated</td><td class="field-product">A1</td></tr>
<tr><td class="field-state">Error</td><td class="field-product">A2</td></tr>
</table></body></html>`

func TestScanPayments_GroupsRepeatedProductCodes(t *testing.T) {
	snap := Parse(map[fetch.Key]fetch.Page{
		fetch.Payments: {URL: "https://admin/payments", Body: []byte(paymentsHTML)},
	}, "")

	if !snap.PaymentsFetched {
		t.Fatal("payments should be marked fetched")
	}
	p := snap.Payments
	if p.Validated != 2 || p.ToValidate != 1 || p.ThreeDSecure != 1 || p.Cancelled != 1 || p.Error != 1 {
		t.Fatalf("state counts wrong: %+v", p)
	}
	// A1 and A2 repeat: both later rows are grouped, whatever their state.
	if p.Grouped != 2 {
		t.Fatalf("want 2 grouped, got %d", p.Grouped)
	}
	if snap.PaymentsURL != "https://admin/payments" {
		t.Fatalf("url wrong: %q", snap.PaymentsURL)
	}
}

const vouchersHTML = `<html><body><table>
<tr><td class="field-has_pdf">Yes</td><td class="field-_has_been_sent">Yes</td><td class="field-imported_from">not imported</td></tr>
<tr><td class="field-has_pdf">No</td><td class="field-_has_been_sent">No</td><td class="field-imported_from">not imported</td></tr>
<tr><td class="field-has_pdf">Yes</td><td class="field-_has_been_sent">Bulk</td><td class="field-imported_from">partner-feed</td></tr>
</table></body></html>`

func TestParse_VouchersPage(t *testing.T) {
	snap := Parse(map[fetch.Key]fetch.Page{
		fetch.Vouchers: {Body: []byte(vouchersHTML)},
	}, "")

	if snap.PDFCount != 2 {
		t.Fatalf("want 2 PDFs, got %d", snap.PDFCount)
	}
	if snap.Email.Sent != 1 || snap.Email.NotSent != 1 || snap.Email.Bulk != 1 {
		t.Fatalf("email counts wrong: %+v", snap.Email)
	}
	if snap.NotImported != 2 {
		t.Fatalf("want denominator 2, got %d", snap.NotImported)
	}
}

func TestParse_PaidVouchers(t *testing.T) {
	body := `<table>
<tr><td class="field-state">Paid</td></tr>
<tr><td class="field-state">Paid</td></tr>
<tr><td class="field-state">Error</td></tr>
<tr><td class="field-state">Refunded</td></tr>
</table>`
	snap := Parse(map[fetch.Key]fetch.Page{
		fetch.PaidVouchers: {Body: []byte(body)},
	}, "")

	v := snap.PaidVouchers
	if v.Paid != 2 || v.Error != 1 || v.Other != 1 {
		t.Fatalf("voucher counts wrong: %+v", v)
	}
}

func TestParse_QueueAllCellsMustBeOnline(t *testing.T) {
	online := `<table><tr><td class="field-status">Online</td></tr><tr><td class="field-status">Online</td></tr></table>`
	mixed := `<table><tr><td class="field-status">Online</td></tr><tr><td class="field-status">Offline</td></tr></table>`
	empty := `<table></table>`

	for _, tc := range []struct {
		body string
		want bool
	}{
		{online, true},
		{mixed, false},
		{empty, false},
	} {
		snap := Parse(map[fetch.Key]fetch.Page{fetch.Queue: {Body: []byte(tc.body)}}, "")
		if snap.QueueOK != tc.want {
			t.Fatalf("body %q: want %v, got %v", tc.body, tc.want, snap.QueueOK)
		}
		if !snap.QueueFetched {
			t.Fatal("queue should be marked fetched")
		}
	}
}

func TestParse_SiteHeadingMatch(t *testing.T) {
	heading := "Nos bons cadeaux - Le Quatrième Mur"
	up := `<html><body><h1>` + heading + `</h1></body></html>`
	down := `<html><body><h1>502 Bad Gateway</h1></body></html>`

	snap := Parse(map[fetch.Key]fetch.Page{fetch.Site: {Body: []byte(up)}}, heading)
	if !snap.SiteOK {
		t.Fatal("matching heading should mark the site healthy")
	}
	snap = Parse(map[fetch.Key]fetch.Page{fetch.Site: {Body: []byte(down)}}, heading)
	if snap.SiteOK {
		t.Fatal("wrong heading should mark the site down")
	}
}

func TestParse_MissingSourcesStayUnfetched(t *testing.T) {
	snap := Parse(map[fetch.Key]fetch.Page{}, "x")
	if snap.PaymentsFetched || snap.VouchersFetched || snap.PaidVouchersFetched || snap.SiteFetched || snap.QueueFetched {
		t.Fatalf("nothing was fetched: %+v", snap)
	}
	if snap.Payments.Validated != 0 || snap.NotImported != 0 {
		t.Fatalf("unfetched sources must stay at zero: %+v", snap)
	}
}

func TestParse_MalformedHTMLDegradesToZero(t *testing.T) {
	snap := Parse(map[fetch.Key]fetch.Page{
		fetch.Payments: {Body: []byte("<<<not html")},
	}, "")
	if !snap.PaymentsFetched {
		t.Fatal("fetched flag tracks the fetch, not parse success")
	}
	if snap.Payments != (PaymentCounts{}) {
		t.Fatalf("want zero counts, got %+v", snap.Payments)
	}
}
