// Command fairserver runs the provably-fair verification API: seed
// commitment, reveal, and third-party outcome recomputation over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tradege/stek-sub013/internal/api"
	"github.com/tradege/stek-sub013/internal/config"
	"github.com/tradege/stek-sub013/internal/store"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open audit store")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to migrate audit store")
	}

	server := api.NewServer(db, log.StandardLogger(), api.Options{
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		Origins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Routes(),
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("fairness server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
