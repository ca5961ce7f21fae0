// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package config

import (
	"runtime"
	"time"

	"github.com/tomtom215/vesseltracker/internal/logging"
)

// Config holds all application configuration
type Config struct {
	Ingest    IngestConfig    `koanf:"ingest"`
	Detection DetectionConfig `koanf:"detection"`
	Logging   LoggingConfig   `koanf:"logging"`
	Progress  ProgressConfig  `koanf:"progress"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// IngestConfig holds ingestion pipeline configuration
type IngestConfig struct {
	// ChunkSize is the number of input lines handed to a worker at once.
	ChunkSize int `koanf:"chunk_size" validate:"min=1"`

	// Workers is the number of parsing workers. Zero means runtime.NumCPU().
	Workers int `koanf:"workers" validate:"min=0"`
}

// DetectionConfig holds stop detection configuration
type DetectionConfig struct {
	// MinDuration is the minimum stop length in seconds.
	MinDuration int64 `koanf:"min_duration" validate:"min=0"`

	// Workers is the number of analysis workers. Zero means runtime.NumCPU().
	Workers int `koanf:"workers" validate:"min=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ProgressConfig holds progress reporting configuration
type ProgressConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"min=100ms"`
}

// MetricsConfig holds profiling and metrics export configuration
type MetricsConfig struct {
	// Enabled turns on per-section timing and memory deltas.
	Enabled bool `koanf:"enabled"`

	// Textfile, when set, receives the collected metrics in Prometheus
	// text exposition format after a run. Setting it implies Enabled.
	Textfile string `koanf:"textfile" validate:"omitempty,filepath"`
}

// Active reports whether a profiler should be created.
func (m MetricsConfig) Active() bool {
	return m.Enabled || m.Textfile != ""
}

// LoggingConfig converts to the logging package configuration.
func (l LoggingConfig) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// IngestWorkers returns the resolved ingestion worker count.
func (c *Config) IngestWorkers() int {
	return resolveWorkers(c.Ingest.Workers)
}

// AnalysisWorkers returns the resolved analysis worker count.
func (c *Config) AnalysisWorkers() int {
	return resolveWorkers(c.Detection.Workers)
}

func resolveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
