package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"madata/premium"
)

// runMetrics collects per-run gauges and writes them in the Prometheus text
// format for a node_exporter textfile collector.
type runMetrics struct {
	registry *prometheus.Registry
	rows     *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	lastRun  *prometheus.GaugeVec
	premium  *prometheus.GaugeVec
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "madata",
			Name:      "output_rows",
			Help:      "Rows written by the last run.",
		}, []string{"dataset", "year"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "madata",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}, []string{"dataset", "year"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "madata",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}, []string{"dataset", "year"}),
		premium: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "madata",
			Name:      "premium_reconcile",
			Help:      "Premium reconciliation counts of the last run.",
		}, []string{"year", "count"}),
	}
	m.registry.MustRegister(m.rows, m.duration, m.lastRun, m.premium)
	return m
}

func (m *runMetrics) observeRun(dataset string, year, rows int, elapsed time.Duration) {
	y := fmt.Sprint(year)
	m.rows.WithLabelValues(dataset, y).Set(float64(rows))
	m.duration.WithLabelValues(dataset, y).Set(elapsed.Seconds())
	m.lastRun.WithLabelValues(dataset, y).SetToCurrentTime()
}

func (m *runMetrics) observeReconcile(year int, s premium.Stats) {
	y := fmt.Sprint(year)
	for name, v := range map[string]int{
		"partc_rows":    s.PartCRows,
		"partd_rows":    s.PartDRows,
		"partc_filled":  s.PartCFilled,
		"partd_filled":  s.PartDFilled,
		"partc_dropped": s.PartCDropped,
		"partd_dropped": s.PartDDropped,
		"matched":       s.Matched,
		"partc_only":    s.PartCOnly,
		"partd_only":    s.PartDOnly,
	} {
		m.premium.WithLabelValues(y, name).Set(float64(v))
	}
}

// writeFile writes the gathered metrics to path; an empty path is a no-op.
func (m *runMetrics) writeFile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
