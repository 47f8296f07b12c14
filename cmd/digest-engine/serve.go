// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/api"
	"github.com/pdiddy/digest-engine/internal/schedule"
	"github.com/pdiddy/digest-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the daily scheduler and the admin HTTP API",
	Long: `Serve runs the digest on its daily schedule and exposes the admin API
for managing sources, topics, the blocklist, and settings. POST
/digest/run triggers an immediate run. The process shuts down cleanly
on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg.LogLevel)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	p := buildPipeline(st, cfg, logger, false)

	sched, err := schedule.New(cfg.Schedule, func() {
		if _, err := p.Run(context.Background()); err != nil {
			logger.Error("scheduled digest run failed", "error", err)
		}
	}, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.New(st, p, logger).Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin API listening", "addr", cfg.Server.Addr, "next_digest", sched.NextRun())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
