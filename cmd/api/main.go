package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/qmops/beebot/internal/config"
	"github.com/qmops/beebot/internal/httpapi"
	"github.com/qmops/beebot/internal/logging"
	"github.com/qmops/beebot/internal/runstore"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store httpapi.Store
	if cfg.DBPath == "" {
		logger.Warn("db_not_configured")
		store = runstore.NewMemory()
	} else {
		s, err := runstore.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		store = s
	}

	api := httpapi.NewServer(logger, store, cfg.APIKeys)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
