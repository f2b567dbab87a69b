// Package pipeline orchestrates one run: fetch → extract → classify →
// trend → compose → deliver → persist. No failure in any single source,
// channel or store operation aborts the run; the job is to always produce
// and attempt to deliver a best-effort report.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/qmops/beebot/internal/classify"
	"github.com/qmops/beebot/internal/extract"
	"github.com/qmops/beebot/internal/fetch"
	"github.com/qmops/beebot/internal/notify"
	"github.com/qmops/beebot/internal/report"
	"github.com/qmops/beebot/internal/runstore"
	"github.com/qmops/beebot/internal/trend"
)

const mailSubject = "🆘 BEEBOT ALERT !"

type Pipeline struct {
	Logger      *zap.Logger
	Fetcher     fetch.Fetcher
	Sources     []fetch.Source
	Policy      classify.Policy
	SiteHeading string
	Store       runstore.Store
	Chat        notify.Notifier // always receives the report
	Mail        notify.Notifier // only on Alert
	TestMode    bool
	Now         func() time.Time // nil means time.Now
}

// Summary is what one run produced and delivered.
type Summary struct {
	Lines     []report.Line
	SlackSent bool
	EmailSent bool
}

func (p *Pipeline) Run(ctx context.Context) Summary {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	at := now()

	p.Logger.Info("run_start", zap.Bool("test_mode", p.TestMode))

	pages := p.Fetcher.FetchAll(ctx, p.Sources)
	p.Logger.Info("pages_fetched", zap.Int("count", len(pages)), zap.Int("requested", len(p.Sources)))

	snap := extract.Parse(pages, p.SiteHeading)
	outcomes := classify.Classify(snap, p.Policy, at)

	prev, err := p.Store.Previous(ctx)
	if err != nil {
		// trend degrades to unknown arrows, the report still goes out
		p.Logger.Warn("previous_run_unavailable", zap.Error(err))
		prev = nil
	}

	lines := make([]report.Line, 0, len(outcomes))
	for _, o := range outcomes {
		lines = append(lines, report.Line{
			Outcome: o,
			Trend:   trend.Compare(o.Metric, o.Value, prev),
		})
	}

	sum := Summary{Lines: lines}

	if p.Chat != nil {
		msg := report.Slack(lines, at, p.TestMode)
		if err := p.Chat.Send(ctx, "", msg); err != nil {
			p.Logger.Warn("slack_send_failed", zap.Error(err))
		} else {
			sum.SlackSent = true
			p.Logger.Info("slack_sent")
		}
	}

	if report.HasAlert(lines) && p.Mail != nil {
		body := report.Mail(lines, at)
		if err := p.Mail.Send(ctx, mailSubject, body); err != nil {
			p.Logger.Warn("mail_send_failed", zap.Error(err))
		} else {
			sum.EmailSent = true
			p.Logger.Info("mail_sent")
		}
	}

	run := &runstore.Run{
		Payments:   snap.Payments.Validated,
		Vouchers:   snap.PaidVouchers.Paid,
		PDFCount:   snap.PDFCount,
		EmailCount: snap.Email.Sent,
		SiteOK:     snap.SiteOK,
		SlackSent:  sum.SlackSent,
		EmailSent:  sum.EmailSent,
		CreatedAt:  at.UTC(),
	}
	if err := p.Store.Save(ctx, run); err != nil {
		// fire and forget: notifications already went out
		p.Logger.Warn("run_save_failed", zap.Error(err))
	} else {
		p.Logger.Info("run_saved", zap.Int64("id", run.ID))
	}

	p.Logger.Info("run_done",
		zap.Bool("slack_sent", sum.SlackSent),
		zap.Bool("email_sent", sum.EmailSent),
	)
	return sum
}
