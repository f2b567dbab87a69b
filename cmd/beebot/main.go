package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/qmops/beebot/internal/classify"
	"github.com/qmops/beebot/internal/config"
	"github.com/qmops/beebot/internal/fetch"
	"github.com/qmops/beebot/internal/logging"
	"github.com/qmops/beebot/internal/notify"
	"github.com/qmops/beebot/internal/pipeline"
	"github.com/qmops/beebot/internal/runstore"
)

func main() {
	testMode := flag.Bool("test", false, "run against canned pages with no live side effects")
	flag.Parse()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	logger.Info("beebot_starting")

	policy, err := classify.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		// defaults already apply; a broken file should be visible, not fatal
		logger.Warn("policy_load_failed", zap.Error(err))
	}

	p := &pipeline.Pipeline{
		Logger:      logger,
		Sources:     sources(cfg),
		Policy:      policy,
		SiteHeading: cfg.SiteHeading,
		TestMode:    *testMode,
	}

	if *testMode {
		p.Fetcher = fetch.Golden()
		p.Store = runstore.NewMemory()
		p.Chat = &notify.Logbook{Logger: logger, Channel: "slack"}
		p.Mail = &notify.Logbook{Logger: logger, Channel: "mail"}
	} else {
		p.Fetcher = fetch.NewHTTPFetcher(cfg.HTTPTimeout, cfg.APIToken, cfg.QueueUser, cfg.QueuePass, logger)
		p.Store = openStore(cfg, logger)
		p.Chat = notify.NewSlack(cfg.SlackToken, cfg.SlackChannel)
		p.Mail = notify.NewMail(cfg.MailToken, cfg.MailSender, cfg.MailRecipients)
	}

	sum := p.Run(context.Background())

	logger.Info("beebot_shutdown",
		zap.Bool("slack_sent", sum.SlackSent),
		zap.Bool("email_sent", sum.EmailSent),
	)
}

func sources(cfg config.Config) []fetch.Source {
	return []fetch.Source{
		{Key: fetch.Payments, URL: cfg.URLPayments, Auth: fetch.AuthToken},
		{Key: fetch.Vouchers, URL: cfg.URLVouchers, Auth: fetch.AuthToken},
		{Key: fetch.PaidVouchers, URL: cfg.URLPaidVouchers, Auth: fetch.AuthToken},
		{Key: fetch.Site, URL: cfg.URLSite, Auth: fetch.AuthNone},
		{Key: fetch.Queue, URL: cfg.URLQueue, Auth: fetch.AuthBasic},
	}
}

// openStore falls back to the in-memory store when the database is not
// configured or unavailable: the run still reports, only trends and
// history are lost.
func openStore(cfg config.Config, logger *zap.Logger) runstore.Store {
	if cfg.DBPath == "" {
		logger.Warn("db_not_configured")
		return runstore.NewMemory()
	}
	s, err := runstore.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Warn("db_open_failed", zap.Error(err))
		return runstore.NewMemory()
	}
	return s
}
