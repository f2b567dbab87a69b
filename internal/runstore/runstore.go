package runstore

import (
	"context"
	"time"
)

// Run is the durable unit: the key counts and booleans of one pipeline
// run plus the delivery outcomes. Rows are append-only; the newest one is
// the baseline for the next run's trend arrows.
type Run struct {
	ID         int64     `json:"id"`
	Payments   int       `json:"payments"`
	Vouchers   int       `json:"vouchers"`
	PDFCount   int       `json:"pdf_count"`
	EmailCount int       `json:"email_count"`
	SiteOK     bool      `json:"site_ok"`
	SlackSent  bool      `json:"slack_sent"`
	EmailSent  bool      `json:"email_sent"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists runs. Previous returns the newest run or nil, nil when
// the store is empty — never an error the pipeline must abort on.
type Store interface {
	Previous(ctx context.Context) (*Run, error)
	Save(ctx context.Context, r *Run) error
}
