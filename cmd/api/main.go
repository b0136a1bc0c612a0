package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/config"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/platform/logger"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	r := router.NewRouter(router.Options{
		DSN:    cfg.DBDSN,
		Logger: log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
