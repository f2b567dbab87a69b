package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/qmops/beebot/internal/httpapi/middleware"
	"github.com/qmops/beebot/internal/runstore"
)

// Store is what the runs API needs from a run store: the newest run and
// a short history window.
type Store interface {
	Previous(ctx context.Context) (*runstore.Run, error)
	Recent(ctx context.Context, limit int) ([]runstore.Run, error)
}

type Server struct {
	Logger *zap.Logger
	Runs   Store
	Keys   []string
}

func NewServer(l *zap.Logger, runs Store, keys []string) *Server {
	return &Server{Logger: l, Runs: runs, Keys: keys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(s.Keys))
		r.Get("/api/runs", s.handleListRuns)
		r.Get("/api/runs/latest", s.handleLatestRun)
	})

	return r
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Runs.Previous(r.Context())
	if err != nil {
		s.Logger.Warn("latest_run_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no runs yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.Runs.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("list_runs_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []runstore.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(runs)
}
