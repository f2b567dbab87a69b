package fetch

import (
	"context"
	"fmt"
	"strings"
)

// Canned serves fixed pages instead of touching the network. It backs test
// mode so classification and composition can run end to end against known
// input, and it is the fake of choice in pipeline tests.
type Canned struct {
	Pages map[Key]Page
}

func (c *Canned) FetchAll(_ context.Context, sources []Source) map[Key]Page {
	out := make(map[Key]Page, len(c.Pages))
	for _, s := range sources {
		if p, ok := c.Pages[s.Key]; ok {
			if p.URL == "" {
				p.URL = s.URL
			}
			out[s.Key] = p
		}
	}
	return out
}

// Golden returns a canned fetcher loaded with a healthy set of dashboard
// pages: 90 validated payments (10 grouped), all vouchers paid, full
// PDF/email coverage over 2 not-imported rows, queue online, site up.
func Golden() *Canned {
	return &Canned{Pages: map[Key]Page{
		Payments:     {URL: "https://admin.example/payments", Body: []byte(goldenPayments)},
		Vouchers:     {URL: "https://admin.example/vouchers", Body: []byte(goldenVouchers)},
		PaidVouchers: {URL: "https://admin.example/paid-vouchers", Body: []byte(goldenPaidVouchers)},
		Site:         {URL: "https://shop.example", Body: []byte(goldenSite)},
		Queue:        {URL: "https://flower.example", Body: []byte(goldenQueue)},
	}}
}

const goldenSite = `<html><body><h1>Nos bons cadeaux - Le Quatrième Mur</h1></body></html>`

const goldenQueue = `<html><body><table>
<tr><td class="field-hostname">worker1</td><td class="field-status">Online</td></tr>
<tr><td class="field-hostname">worker2</td><td class="field-status">Online</td></tr>
</table></body></html>`

const goldenPaidVouchers = `<html><body><table>
<tr><td class="field-state">Paid</td></tr>
<tr><td class="field-state">Paid</td></tr>
<tr><td class="field-state">Paid</td></tr>
</table></body></html>`

const goldenVouchers = `<html><body><table>
<tr><td class="field-has_pdf">Yes</td><td class="field-_has_been_sent">Yes</td><td class="field-imported_from">not imported</td></tr>
<tr><td class="field-has_pdf">Yes</td><td class="field-_has_been_sent">Yes</td><td class="field-imported_from">not imported</td></tr>
</table></body></html>`

// goldenPayments is generated: 90 distinct validated rows followed by 10
// rows reusing the first 10 product codes (the grouped tail).
var goldenPayments = func() string {
	var b strings.Builder
	b.WriteString("<html><body><table>\n")
	row := func(state string, code int) {
		fmt.Fprintf(&b, "<tr><td class=\"field-state\">%s</td><td class=\"field-product\">P%d</td></tr>\n", state, code)
	}
	for i := 0; i < 90; i++ {
		row("Validated", i)
	}
	for i := 0; i < 10; i++ {
		row("Validated", i)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}()
