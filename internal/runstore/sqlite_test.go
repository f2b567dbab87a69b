package runstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "beebot.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_EmptyStoreHasNoPrevious(t *testing.T) {
	s := openTemp(t)
	r, err := s.Previous(context.Background())
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if r != nil {
		t.Fatalf("want nil on empty store, got %+v", r)
	}
}

func TestSQLite_SaveThenPrevious(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first := &Run{Payments: 80, Vouchers: 3, PDFCount: 10, EmailCount: 9, SiteOK: true, SlackSent: true}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := &Run{Payments: 90, Vouchers: 4, PDFCount: 12, EmailCount: 11, SiteOK: true, SlackSent: true, EmailSent: true}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	prev, err := s.Previous(ctx)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if prev == nil || prev.Payments != 90 || !prev.EmailSent {
		t.Fatalf("want newest run back, got %+v", prev)
	}
	if prev.ID <= first.ID {
		t.Fatalf("ids must be ascending: %d then %d", first.ID, prev.ID)
	}
	if prev.CreatedAt.IsZero() {
		t.Fatal("timestamp not persisted")
	}
}

func TestSQLite_RecentNewestFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		if err := s.Save(ctx, &Run{Payments: i, CreatedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	runs, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 3 || runs[0].Payments != 5 || runs[2].Payments != 3 {
		t.Fatalf("ordering wrong: %+v", runs)
	}
}
