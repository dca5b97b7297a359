package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard pipeline.
type Metrics struct {
	DaysFetched   prometheus.Counter
	FetchErrors   prometheus.Counter
	DaysSkipped   prometheus.Counter // malformed or unreadable days dropped during load
	StageFailures *prometheus.CounterVec // label: stage={live,days,months,records}

	RunDuration    prometheus.Histogram
	LastRunSuccess prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DaysFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pws_dashboard",
			Name:      "days_fetched_total",
			Help:      "Total day files fetched from the vendor API.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pws_dashboard",
			Name:      "fetch_errors_total",
			Help:      "Total failed day fetches.",
		}),
		DaysSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pws_dashboard",
			Name:      "days_skipped_total",
			Help:      "Total stored days skipped as malformed or unreadable.",
		}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pws_dashboard",
			Name:      "stage_failures_total",
			Help:      "Rendering stage failures by stage.",
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pws_dashboard",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete sync-aggregate-render run.",
			Buckets:   []float64{0.05, 0.25, 1, 5, 15, 60, 300, 1800},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pws_dashboard",
			Name:      "last_run_success",
			Help:      "1 when the most recent run wrote the page, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.DaysFetched,
		m.FetchErrors,
		m.DaysSkipped,
		m.StageFailures,
		m.RunDuration,
		m.LastRunSuccess,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DaysFetched:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pws_dashboard", Name: "days_fetched_total"}),
		FetchErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pws_dashboard", Name: "fetch_errors_total"}),
		DaysSkipped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pws_dashboard", Name: "days_skipped_total"}),
		StageFailures:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "pws_dashboard", Name: "stage_failures_total"}, []string{"stage"}),
		RunDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "pws_dashboard", Name: "run_duration_seconds"}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "pws_dashboard", Name: "last_run_success"}),
	}
}
