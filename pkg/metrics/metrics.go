// Package metrics counts codec activity for one CLI run and exports it in
// the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the savekit collectors. Each instance has its own registry.
type Metrics struct {
	reg *prometheus.Registry

	decodesTotal     *prometheus.CounterVec
	decodeDuration   *prometheus.HistogramVec
	writesTotal      *prometheus.CounterVec
	changedBytes     prometheus.Histogram
	snapshotsTotal   *prometheus.CounterVec
	capacityFailures *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,

		decodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savekit_decodes_total",
				Help: "Total number of file decodes",
			},
			[]string{"kind", "status"},
		),

		decodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "savekit_decode_duration_seconds",
				Help:    "File decode duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"kind"},
		),

		writesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savekit_writes_total",
				Help: "Total number of files written",
			},
			[]string{"kind"},
		),

		changedBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "savekit_changed_bytes",
				Help:    "Bytes that differ between the original and the written file",
				Buckets: prometheus.ExponentialBuckets(1, 4, 9),
			},
		),

		snapshotsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savekit_snapshots_total",
				Help: "Total number of snapshot operations",
			},
			[]string{"operation"},
		),

		capacityFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savekit_capacity_failures_total",
				Help: "Total number of pushes rejected by a full list",
			},
			[]string{"list"},
		),
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// RecordDecode records a decode attempt. kind is "unknown" when the magic
// was not recognized.
func (m *Metrics) RecordDecode(kind string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.decodesTotal.WithLabelValues(kind, status).Inc()
	m.decodeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordWrite records a written file and how many bytes it changed.
func (m *Metrics) RecordWrite(kind string, changed int) {
	m.writesTotal.WithLabelValues(kind).Inc()
	m.changedBytes.Observe(float64(changed))
}

// RecordSnapshot records a snapshot store operation such as "put",
// "restore" or "prune".
func (m *Metrics) RecordSnapshot(operation string) {
	m.snapshotsTotal.WithLabelValues(operation).Inc()
}

// RecordCapacityFailure records a push rejected because the list was full.
func (m *Metrics) RecordCapacityFailure(list string) {
	m.capacityFailures.WithLabelValues(list).Inc()
}

// WriteTextfile writes every metric to path. The file is written to a
// temporary name and renamed, so a collector never sees a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
