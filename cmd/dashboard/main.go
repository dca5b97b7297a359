// Command dashboard syncs the station's raw day store against the Ecowitt
// history API and regenerates the static climatology page.
//
// By default it performs a single run and exits, which suits cron or CI
// schedules. With -serve it keeps running: the page is refreshed on an
// interval and served over HTTP alongside health and metrics endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron"

	"github.com/ombrelab/pws-dashboard/internal/adapter/ecowitt"
	httpadapter "github.com/ombrelab/pws-dashboard/internal/adapter/http"
	"github.com/ombrelab/pws-dashboard/internal/config"
	"github.com/ombrelab/pws-dashboard/internal/observability"
	"github.com/ombrelab/pws-dashboard/internal/pipeline"
	"github.com/ombrelab/pws-dashboard/internal/render"
	"github.com/ombrelab/pws-dashboard/internal/store"
)

func main() {
	serve := flag.Bool("serve", false, "keep running: refresh on an interval and serve the page over HTTP")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st, err := store.New(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open data dir", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	// A nil fetcher regenerates the page from the local store only.
	var fetcher pipeline.Fetcher
	if cfg.SyncEnabled {
		fetcher = ecowitt.NewClient(ecowitt.Config{
			BaseURL:        cfg.APIURL,
			ApplicationKey: cfg.ApplicationKey,
			APIKey:         cfg.APIKey,
			StationMAC:     cfg.StationMAC,
			Timeout:        cfg.HTTPTimeout,
		}, logger)
		logger.Info("sync enabled", "start_date", cfg.StartDate, "fetch_delay", cfg.FetchDelay)
	} else {
		logger.Info("sync disabled, regenerating from local store")
	}

	renderer := render.New(cfg.PageTitle, cfg.Timezone, logger, metrics)

	p := pipeline.New(st, fetcher, renderer, pipeline.Config{
		StartDate:  cfg.StartDate,
		Timezone:   cfg.Timezone,
		FetchDelay: cfg.FetchDelay,
		OutputPath: cfg.OutputPath,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !*serve {
		if err := p.Run(ctx); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runServe(ctx, cfg, p, logger); err != nil {
		logger.Error("serve mode failed", "error", err)
		os.Exit(1)
	}
}

// runServe performs an initial run, then keeps the page fresh on the
// configured interval while serving it over HTTP until a signal arrives.
func runServe(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) error {
	if err := p.Run(ctx); err != nil {
		// Serve mode stays up on a failed initial run; readiness reports it.
		logger.Error("initial run failed", "error", err)
	}

	scheduler := gocron.NewScheduler(cfg.Timezone)
	scheduler.SingletonModeAll()
	if _, err := scheduler.Every(cfg.RefreshInterval).Do(func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		return err
	}
	scheduler.StartAsync()

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.OutputPath, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
