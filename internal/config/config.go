package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the pipeline needs from the environment.
// Secrets and URLs come from env vars; the threshold policy lives in an
// optional YAML file (see classify.LoadPolicy).
type Config struct {
	Addr       string // runs API bind address
	LogDir     string // logs directory
	DBPath     string // sqlite file; empty means in-memory store
	PolicyFile string // threshold policy YAML; empty means built-in defaults

	APIToken string // dashboard auth token, sent as-is in Authorization

	SlackToken   string
	SlackChannel string

	MailToken      string // SendGrid API token
	MailSender     string
	MailRecipients []string

	QueueUser string // worker-queue dashboard HTTP Basic credentials
	QueuePass string

	URLPayments     string
	URLVouchers     string
	URLPaidVouchers string
	URLSite         string
	URLQueue        string

	SiteHeading string // h1 text that marks the storefront healthy

	APIKeys []string // bearer keys for the runs API; empty disables auth

	HTTPTimeout time.Duration // per-page fetch timeout
}

func FromEnv() Config {
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	heading := os.Getenv("SITE_HEADING")
	if heading == "" {
		heading = "Nos bons cadeaux - Le Quatrième Mur"
	}

	return Config{
		Addr:            addr,
		LogDir:          logDir,
		DBPath:          os.Getenv("DATABASE_PATH"),
		PolicyFile:      os.Getenv("THRESHOLDS_FILE"),
		APIToken:        os.Getenv("API_TOKEN"),
		SlackToken:      os.Getenv("SLACK_API_TOKEN"),
		SlackChannel:    os.Getenv("SLACK_CHANNEL"),
		MailToken:       os.Getenv("SENDGRID_API_TOKEN"),
		MailSender:      os.Getenv("SENDGRID_SENDER"),
		MailRecipients:  splitList(os.Getenv("SENDGRID_RECIPIENTS")),
		QueueUser:       os.Getenv("CELERY_USERNAME"),
		QueuePass:       os.Getenv("CELERY_PASSWORD"),
		URLPayments:     os.Getenv("URL_PAYMENTS"),
		URLVouchers:     os.Getenv("URL_VOUCHERS"),
		URLPaidVouchers: os.Getenv("URL_PAID_VOUCHERS"),
		URLSite:         os.Getenv("URL_PURCHASE_WEBSITE"),
		URLQueue:        os.Getenv("URL_CELERY"),
		SiteHeading:     heading,
		APIKeys:         splitList(os.Getenv("API_KEYS")),
		HTTPTimeout:     timeout,
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
