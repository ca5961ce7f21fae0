// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

/*
Package config provides centralized configuration management for Vessel Tracker.

Configuration is layered with koanf. Each layer overrides the previous one:

 1. Defaults: built-in values from defaultConfig()
 2. Config file: optional YAML file (CONFIG_PATH, config.yaml, config.yml,
    /etc/vesseltracker/config.yaml)
 3. Environment variables: an explicit mapping table (see envTransformFunc)
 4. Command-line flags: applied by the caller after loading

# Configuration Structure

  - IngestConfig: chunk size and worker count for the ingestion pipeline
  - DetectionConfig: minimum stop duration and analysis worker count
  - LoggingConfig: zerolog level, format and caller reporting
  - ProgressConfig: periodic progress logging
  - MetricsConfig: section profiling and Prometheus textfile export

# Environment Variables

  - VT_CHUNK_SIZE: lines per ingestion chunk (default: 100000)
  - VT_WORKERS: ingestion workers, 0 means one per CPU (default: 0)
  - VT_ANALYSIS_WORKERS: stop detection workers, 0 means one per CPU (default: 0)
  - VT_MIN_DURATION: minimum stop duration in seconds (default: 3600)
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: console)
  - LOG_CALLER: include caller file:line (default: false)
  - VT_PROGRESS: enable progress logging (default: true)
  - VT_PROGRESS_INTERVAL: progress log interval (default: 2s)
  - VT_PROFILE: enable section profiling (default: false)
  - VT_METRICS_TEXTFILE: write metrics in Prometheus text format to this path

# Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init(cfg.Logging.LoggingConfig())

# Thread Safety

Config values are read-only after LoadWithKoanf returns and are safe to share
between goroutines.
*/
package config
