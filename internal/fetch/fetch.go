package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Key identifies one monitored dashboard page.
type Key string

const (
	Payments     Key = "payments"
	Vouchers     Key = "vouchers" // pdf/email admin page
	PaidVouchers Key = "paid_vouchers"
	Site         Key = "purchase_website"
	Queue        Key = "celery"
)

// AuthMode selects how a source is authenticated.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthToken
	AuthBasic
)

// Source is one monitored page. Built once from configuration, immutable
// for the duration of a run.
type Source struct {
	Key  Key
	URL  string
	Auth AuthMode
}

// Page is a fetched body plus the URL it came from. Consumed by the
// extractor and discarded.
type Page struct {
	URL  string
	Body []byte
}

// Fetcher retrieves a set of pages. Keys absent from the result mean the
// source was unavailable this run; callers must treat that as "no data",
// never as zero.
type Fetcher interface {
	FetchAll(ctx context.Context, sources []Source) map[Key]Page
}

// HTTPFetcher fetches all sources concurrently over authenticated HTTP.
// A non-2xx response or transport error drops that key only.
type HTTPFetcher struct {
	Client    *http.Client
	Token     string // sent verbatim in Authorization for AuthToken sources
	BasicUser string
	BasicPass string
	Logger    *zap.Logger
}

func NewHTTPFetcher(timeout time.Duration, token, basicUser, basicPass string, logger *zap.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		Token:     token,
		BasicUser: basicUser,
		BasicPass: basicPass,
		Logger:    logger,
	}
}

func (f *HTTPFetcher) FetchAll(ctx context.Context, sources []Source) map[Key]Page {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		pages = make(map[Key]Page, len(sources))
	)

	for _, src := range sources {
		if src.URL == "" {
			continue
		}
		s := src
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, err := f.fetchOne(ctx, s)
			if err != nil {
				f.Logger.Warn("fetch_failed",
					zap.String("key", string(s.Key)),
					zap.String("url", s.URL),
					zap.Error(err),
				)
				return
			}
			mu.Lock()
			pages[s.Key] = Page{URL: s.URL, Body: body}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return pages
}

func (f *HTTPFetcher) fetchOne(ctx context.Context, s Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	switch s.Auth {
	case AuthToken:
		req.Header.Set("Authorization", f.Token)
	case AuthBasic:
		req.SetBasicAuth(f.BasicUser, f.BasicPass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
