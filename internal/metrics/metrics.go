// Package metrics exposes Prometheus instrumentation for the scan
// pipeline on its own registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the scanner's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ScanCyclesTotal   prometheus.Counter
	ScanCycleDur      prometheus.Histogram
	SymbolsScanned    prometheus.Counter
	SymbolsSkipped    *prometheus.CounterVec // labels: reason
	UpstreamReqDur    *prometheus.HistogramVec
	StrategyRunsTotal *prometheus.CounterVec // labels: strategy
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ScanCyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_scan_cycles_total",
			Help: "Completed scan cycles.",
		}),
		ScanCycleDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_scan_cycle_duration_seconds",
			Help:    "Wall time of a full scan cycle.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		SymbolsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_symbols_scanned_total",
			Help: "Symbols that produced a scan result.",
		}),
		SymbolsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_symbols_skipped_total",
			Help: "Symbols dropped from a scan, by reason.",
		}, []string{"reason"}),
		UpstreamReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scanner_upstream_request_duration_seconds",
			Help:    "Upstream market-data request latency.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"op"}),
		StrategyRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_strategy_runs_total",
			Help: "Strategy view executions.",
		}, []string{"strategy"}),
	}

	m.registry.MustRegister(
		m.ScanCyclesTotal,
		m.ScanCycleDur,
		m.SymbolsScanned,
		m.SymbolsSkipped,
		m.UpstreamReqDur,
		m.StrategyRunsTotal,
	)
	return m
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
