package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPFetcher_ConcurrentAllKeys(t *testing.T) {
	payments := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token abc" {
			w.WriteHeader(403)
			return
		}
		w.Write([]byte("<html>payments</html>"))
	}))
	defer payments.Close()

	queue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "flower" || pass != "secret" {
			w.WriteHeader(401)
			return
		}
		w.Write([]byte("<html>queue</html>"))
	}))
	defer queue.Close()

	f := NewHTTPFetcher(2*time.Second, "Token abc", "flower", "secret", zap.NewNop())
	pages := f.FetchAll(context.Background(), []Source{
		{Key: Payments, URL: payments.URL, Auth: AuthToken},
		{Key: Queue, URL: queue.URL, Auth: AuthBasic},
	})

	if len(pages) != 2 {
		t.Fatalf("want 2 pages, got %d", len(pages))
	}
	if string(pages[Payments].Body) != "<html>payments</html>" {
		t.Fatalf("payments body wrong: %q", pages[Payments].Body)
	}
	if pages[Queue].URL != queue.URL {
		t.Fatalf("queue url wrong: %q", pages[Queue].URL)
	}
}

func TestHTTPFetcher_Non2xxOmitsKeyOnly(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer good.Close()

	f := NewHTTPFetcher(2*time.Second, "", "", "", zap.NewNop())
	pages := f.FetchAll(context.Background(), []Source{
		{Key: Payments, URL: bad.URL},
		{Key: Site, URL: good.URL},
	})

	if _, ok := pages[Payments]; ok {
		t.Fatalf("failed source must be absent, got %+v", pages)
	}
	if _, ok := pages[Site]; !ok {
		t.Fatalf("healthy source must survive a sibling failure")
	}
}

func TestHTTPFetcher_SkipsEmptyURL(t *testing.T) {
	f := NewHTTPFetcher(time.Second, "", "", "", zap.NewNop())
	pages := f.FetchAll(context.Background(), []Source{{Key: Payments, URL: ""}})
	if len(pages) != 0 {
		t.Fatalf("want empty map, got %+v", pages)
	}
}

func TestCanned_ServesOnlyRequestedSources(t *testing.T) {
	c := Golden()
	pages := c.FetchAll(context.Background(), []Source{{Key: Site}, {Key: Queue}})
	if len(pages) != 2 {
		t.Fatalf("want 2 pages, got %d", len(pages))
	}
	if _, ok := pages[Payments]; ok {
		t.Fatalf("payments was not requested")
	}
}
