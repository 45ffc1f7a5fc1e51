package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/sitepress/internal/api"
	"github.com/dgallion1/sitepress/internal/config"
	"github.com/dgallion1/sitepress/internal/pipeline"
	"github.com/dgallion1/sitepress/internal/publish"
	"github.com/dgallion1/sitepress/internal/search"
	"github.com/dgallion1/sitepress/internal/sitestore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sitestore.New(cfg.OutputDir, cfg.SiteTitle)
	if err != nil {
		log.Error("site store init failed", "error", err)
		os.Exit(1)
	}
	index := search.NewIndex()

	var pub *publish.Client
	if cfg.PublishURL != "" {
		pub = publish.NewClient(cfg.PublishURL, cfg.PublishAPIKey)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, index, pub, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if pub != nil {
			pub.Close()
		}
	}()

	log.Info("starting sitepress", "port", cfg.Port, "output_dir", cfg.OutputDir, "publish", cfg.PublishURL != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
