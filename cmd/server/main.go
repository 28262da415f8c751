package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/monopoly-backend/internal/config"
	"github.com/DoyleJ11/monopoly-backend/internal/engine"
	"github.com/DoyleJ11/monopoly-backend/internal/httpapi"
	"github.com/DoyleJ11/monopoly-backend/internal/hub"
	"github.com/DoyleJ11/monopoly-backend/internal/logging"
	"github.com/DoyleJ11/monopoly-backend/internal/registry"
	"github.com/DoyleJ11/monopoly-backend/internal/session"
	"github.com/DoyleJ11/monopoly-backend/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() {
		// Sync fails on stdout/stderr on some platforms; only report it
		// alongside a real error.
		if syncErr := log.Sync(); err != nil {
			err = multierr.Append(err, syncErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, hub.Options{
		Engine:       engine.New(engine.Options{PlayerCount: cfg.MaxPlayers}),
		Registry:     registry.New(),
		Sessions:     session.New(),
		Logger:       log.Named("hub"),
		Defaults:     cfg.Settings,
		IdleTTL:      cfg.RoomIdleTTL,
		ReapInterval: cfg.ReapInterval,
	})

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(h, log.Named("http"), ws.Options{
			PingInterval:   cfg.PingInterval,
			OutboxSize:     cfg.OutboxSize,
			OriginPatterns: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown; the
		// hub closing every outbox ends them.
		var errs error
		errs = multierr.Append(errs, srv.Shutdown(shutdownCtx))
		stop()
		select {
		case <-h.Done():
		case <-shutdownCtx.Done():
			errs = multierr.Append(errs, fmt.Errorf("hub: %w", shutdownCtx.Err()))
		}
		return errs
	})
	return g.Wait()
}
