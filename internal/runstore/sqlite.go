package runstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLite)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	payments    INTEGER NOT NULL DEFAULT 0,
	vouchers    INTEGER NOT NULL DEFAULT 0,
	pdf_count   INTEGER NOT NULL DEFAULT 0,
	email_count INTEGER NOT NULL DEFAULT 0,
	site_ok     INTEGER NOT NULL DEFAULT 0,
	slack_sent  INTEGER NOT NULL DEFAULT 0,
	email_sent  INTEGER NOT NULL DEFAULT 0,
	datetime    TEXT
);`

const timeFormat = "2006-01-02T15:04:05Z"

// SQLite stores runs in a local file. A single connection is enough: the
// pipeline reads once and writes once per run.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Previous(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, payments, vouchers, pdf_count, email_count, site_ok, slack_sent, email_sent, datetime
  FROM runs
 ORDER BY id DESC
 LIMIT 1`)

	var (
		r  Run
		ts sql.NullString
	)
	err := row.Scan(&r.ID, &r.Payments, &r.Vouchers, &r.PDFCount, &r.EmailCount,
		&r.SiteOK, &r.SlackSent, &r.EmailSent, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("previous run: %w", err)
	}
	if ts.Valid {
		if t, perr := time.Parse(timeFormat, ts.String); perr == nil {
			r.CreatedAt = t
		}
	}
	return &r, nil
}

func (s *SQLite) Save(ctx context.Context, r *Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO runs (payments, vouchers, pdf_count, email_count, site_ok, slack_sent, email_sent, datetime)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Payments, r.Vouchers, r.PDFCount, r.EmailCount,
		r.SiteOK, r.SlackSent, r.EmailSent, r.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}
	return nil
}

// Recent returns up to limit runs, newest first. Serves the runs API;
// the pipeline itself never reads more than the single previous run.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, payments, vouchers, pdf_count, email_count, site_ok, slack_sent, email_sent, datetime
  FROM runs
 ORDER BY id DESC
 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r  Run
			ts sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Payments, &r.Vouchers, &r.PDFCount, &r.EmailCount,
			&r.SiteOK, &r.SlackSent, &r.EmailSent, &ts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts.Valid {
			if t, perr := time.Parse(timeFormat, ts.String); perr == nil {
				r.CreatedAt = t
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
