// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/vesseltracker/internal/logging"
)

// PrometheusProfiler records section timings, memory deltas and pipeline
// counters on a private Prometheus registry.
type PrometheusProfiler struct {
	registry *prometheus.Registry
	sampler  MemorySampler
	now      func() time.Time

	sectionDuration    *prometheus.HistogramVec
	sectionMemoryDelta *prometheus.GaugeVec
	chunks             *prometheus.CounterVec
	lines              prometheus.Counter
	positions          prometheus.Counter
	rejected           prometheus.Counter
	vessels            *prometheus.CounterVec
	stops              prometheus.Counter

	mu      sync.Mutex
	results []SectionResult
}

// ProfilerOption configures a PrometheusProfiler.
type ProfilerOption func(*PrometheusProfiler)

// WithMemorySampler replaces the RSS sampler (used by tests).
func WithMemorySampler(s MemorySampler) ProfilerOption {
	return func(p *PrometheusProfiler) {
		p.sampler = s
	}
}

// NewPrometheusProfiler creates a profiler with its own registry.
func NewPrometheusProfiler(opts ...ProfilerOption) *PrometheusProfiler {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	p := &PrometheusProfiler{
		registry: reg,
		sampler:  ProcessRSS(),
		now:      time.Now,

		sectionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vesseltracker_section_duration_seconds",
				Help:    "Wall-clock duration of profiled run sections in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
			},
			[]string{"section"},
		),
		sectionMemoryDelta: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vesseltracker_section_memory_delta_bytes",
				Help: "Change in resident set size over a profiled section",
			},
			[]string{"section"},
		),
		chunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vesseltracker_chunks_total",
				Help: "Total number of ingestion chunks processed",
			},
			[]string{"status"}, // "ok", "failed"
		),
		lines: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vesseltracker_lines_total",
				Help: "Total number of input lines read by chunk workers",
			},
		),
		positions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vesseltracker_positions_total",
				Help: "Total number of valid positions produced",
			},
		),
		rejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vesseltracker_records_rejected_total",
				Help: "Total number of input lines rejected by the parser",
			},
		),
		vessels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vesseltracker_vessels_analyzed_total",
				Help: "Total number of vessels analyzed for stops",
			},
			[]string{"status"}, // "ok", "failed"
		),
		stops: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vesseltracker_stops_detected_total",
				Help: "Total number of stop events detected",
			},
		),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry holding the profiler's metrics.
func (p *PrometheusProfiler) Registry() *prometheus.Registry {
	return p.registry
}

// Section starts a profiled section and returns the function that ends it.
// Calling the returned function more than once records the section once.
func (p *PrometheusProfiler) Section(name string) func() {
	start := p.now()
	startMem, startErr := p.sampler()

	var once sync.Once
	return func() {
		once.Do(func() {
			duration := p.now().Sub(start)

			var delta int64
			endMem, endErr := p.sampler()
			if startErr == nil && endErr == nil {
				delta = int64(endMem) - int64(startMem) //nolint:gosec // RSS fits in int64
			} else {
				logging.Debug().Str("section", name).Msg("Memory sampling unavailable")
			}

			p.sectionDuration.WithLabelValues(name).Observe(duration.Seconds())
			p.sectionMemoryDelta.WithLabelValues(name).Set(float64(delta))

			p.mu.Lock()
			p.results = append(p.results, SectionResult{Name: name, Duration: duration, MemoryDelta: delta})
			p.mu.Unlock()
		})
	}
}

// RecordChunk records the outcome of one ingestion chunk.
func (p *PrometheusProfiler) RecordChunk(lines, positions, rejected int, failed bool) {
	status := "ok"
	if failed {
		status = "failed"
	}
	p.chunks.WithLabelValues(status).Inc()
	p.lines.Add(float64(lines))
	p.positions.Add(float64(positions))
	p.rejected.Add(float64(rejected))
}

// RecordVessel records the outcome of one vessel analysis.
func (p *PrometheusProfiler) RecordVessel(stops int, failed bool) {
	if failed {
		p.vessels.WithLabelValues("failed").Inc()
		return
	}
	p.vessels.WithLabelValues("ok").Inc()
	p.stops.Add(float64(stops))
}

// Results returns the completed sections in completion order.
func (p *PrometheusProfiler) Results() []SectionResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]SectionResult, len(p.results))
	copy(out, p.results)
	return out
}

// LogSummary logs one line per completed section.
func (p *PrometheusProfiler) LogSummary() {
	logger := logging.WithComponent("profiler")

	var total time.Duration
	for _, r := range p.Results() {
		total += r.Duration
		logger.Info().
			Str("section", r.Name).
			Dur("duration", r.Duration).
			Str("memory_delta", formatDelta(r.MemoryDelta)).
			Msg("Section profile")
	}
	logger.Info().Dur("total", total).Msg("Profile summary")
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable for
// the node_exporter textfile collector. The file is written atomically.
func (p *PrometheusProfiler) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func formatDelta(delta int64) string {
	if delta < 0 {
		return "-" + humanize.IBytes(uint64(-delta))
	}
	return "+" + humanize.IBytes(uint64(delta))
}
