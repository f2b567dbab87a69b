// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	apiToken := strings.TrimSpace(os.Getenv("API_TOKEN"))
	slackToken := strings.TrimSpace(os.Getenv("SLACK_API_TOKEN"))
	slackChannel := strings.TrimSpace(os.Getenv("SLACK_CHANNEL"))
	mailToken := strings.TrimSpace(os.Getenv("SENDGRID_API_TOKEN"))
	recipients := strings.TrimSpace(os.Getenv("SENDGRID_RECIPIENTS"))
	db := strings.TrimSpace(os.Getenv("DATABASE_PATH"))

	if apiToken == "" {
		fail("API_TOKEN is empty (dashboard pages will 403 and every metric will alert).")
	}
	if slackToken == "" || slackChannel == "" {
		fail("SLACK_API_TOKEN / SLACK_CHANNEL is empty (no report will be delivered).")
	}

	if mailToken == "" {
		warn("SENDGRID_API_TOKEN empty — alert escalation mail is disabled.")
	} else if recipients == "" {
		warn("SENDGRID_RECIPIENTS empty — mail client will be disabled despite a token.")
	} else if strings.Contains(recipients, " ") && !strings.Contains(recipients, ",") {
		warn("SENDGRID_RECIPIENTS contains spaces; use comma-separated addresses.")
	} else {
		ok("mail escalation configured")
	}

	for _, name := range []string{"URL_PAYMENTS", "URL_VOUCHERS", "URL_PAID_VOUCHERS", "URL_PURCHASE_WEBSITE", "URL_CELERY"} {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			warn(name + " empty — that metric will report as not available.")
		} else {
			ok(name + " present")
		}
	}

	if os.Getenv("URL_CELERY") != "" && (os.Getenv("CELERY_USERNAME") == "" || os.Getenv("CELERY_PASSWORD") == "") {
		warn("CELERY_USERNAME/CELERY_PASSWORD empty — the worker-queue fetch will 401.")
	}

	if db == "" {
		warn("DATABASE_PATH empty — runs will not persist and trends will stay unknown.")
	} else {
		ok("DATABASE_PATH present")
	}

	ok("preflight passed")
}
