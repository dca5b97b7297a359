// Package pipeline orchestrates one full dashboard run: sync the raw store
// against the vendor API, rebuild the corpus, and render the page.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ombrelab/pws-dashboard/internal/domain"
	"github.com/ombrelab/pws-dashboard/internal/observability"
)

// Fetcher retrieves one day's verbatim payload from the vendor API.
type Fetcher interface {
	FetchDay(ctx context.Context, date string) ([]byte, error)
}

// Store is the raw day store contract.
type Store interface {
	Dates() ([]string, error)
	Has(date string) bool
	ReadDay(date string) ([]byte, error)
	WriteDay(date string, body []byte) error
}

// Renderer turns a corpus into the final page bytes.
type Renderer interface {
	Page(corpus domain.Corpus, dates []string) ([]byte, error)
}

// Config carries the pipeline settings extracted from the app config.
type Config struct {
	StartDate  string // YYYY-MM-DD, first day to backfill
	Timezone   *time.Location
	FetchDelay time.Duration // pause between vendor API calls
	OutputPath string
}

// Pipeline runs the sync-aggregate-render cycle. It is batch-oriented:
// every run reloads the whole store and recomputes every derived table.
type Pipeline struct {
	store    Store
	fetcher  Fetcher // nil disables sync (offline regeneration)
	renderer Renderer
	cfg      Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Pipeline. Pass a nil fetcher to regenerate from the local
// store without touching the network.
func New(store Store, fetcher Fetcher, renderer Renderer, cfg Config, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		store:    store,
		fetcher:  fetcher,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a page has been generated, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no dashboard generated yet")
	}
	return nil
}

// Run executes one full cycle and writes the page to the output path.
// Per-date fetch failures are logged and skipped; only a failure to produce
// or write the page itself is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	if p.fetcher != nil {
		p.sync(ctx)
	}

	page, err := p.generate()
	if err != nil {
		p.metrics.LastRunSuccess.Set(0)
		return err
	}

	if err := writeAtomic(p.cfg.OutputPath, page); err != nil {
		p.metrics.LastRunSuccess.Set(0)
		return fmt.Errorf("write output: %w", err)
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.LastRunSuccess.Set(1)
	p.ready.Store(true)
	p.logger.Info("dashboard written", "path", p.cfg.OutputPath, "duration", time.Since(start))
	return nil
}

// sync walks every date from the configured start through today (station
// time). Today is always re-fetched to capture intra-day updates; earlier
// dates are fetched only when missing and never again once present. The
// inter-request delay applies only when the API was actually called.
func (p *Pipeline) sync(ctx context.Context) {
	today := domain.Now().In(p.cfg.Timezone).Format("2006-01-02")

	day, err := time.ParseInLocation("2006-01-02", p.cfg.StartDate, p.cfg.Timezone)
	if err != nil {
		p.logger.Error("invalid start date, skipping sync", "start_date", p.cfg.StartDate, "error", err)
		return
	}

	for date := day.Format("2006-01-02"); date <= today; day, date = day.AddDate(0, 0, 1), day.AddDate(0, 0, 1).Format("2006-01-02") {
		if date != today && p.store.Has(date) {
			continue
		}
		if ctx.Err() != nil {
			p.logger.Info("sync interrupted", "reason", ctx.Err())
			return
		}

		p.logger.Info("fetching day", "date", date)
		body, err := p.fetcher.FetchDay(ctx, date)
		if err != nil {
			// The file stays absent, so the next run retries this date.
			p.logger.Warn("fetch failed", "date", date, "error", err)
			p.metrics.FetchErrors.Inc()
		} else if err := p.store.WriteDay(date, body); err != nil {
			p.logger.Error("store write failed", "date", date, "error", err)
		} else {
			p.metrics.DaysFetched.Inc()
		}

		if !sleepWithContext(ctx, p.cfg.FetchDelay) {
			return
		}
	}
}

// generate rebuilds the corpus from the store and renders the page. The
// daily table lists dates most-recent-first, matching the store's file set
// rather than the corpus (a malformed day still gets an empty row).
func (p *Pipeline) generate() ([]byte, error) {
	dates, err := p.store.Dates()
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}

	days := make([]domain.RawDay, 0, len(dates))
	for _, date := range dates {
		body, err := p.store.ReadDay(date)
		if err != nil {
			p.logger.Warn("skipping unreadable day", "date", date, "error", err)
			p.metrics.DaysSkipped.Inc()
			continue
		}
		days = append(days, domain.RawDay{Date: date, Body: body})
	}

	corpus := domain.BuildCorpus(days, p.cfg.Timezone, p.logger)

	newestFirst := make([]string, len(dates))
	for i, date := range dates {
		newestFirst[len(dates)-1-i] = date
	}

	return p.renderer.Page(corpus, newestFirst)
}

// writeAtomic writes via a temp file and rename so readers never observe a
// half-written page.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".page-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
