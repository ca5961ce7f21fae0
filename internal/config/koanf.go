// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vesseltracker/config.yaml",
	"/etc/vesseltracker/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default values shared with the command-line flags.
const (
	DefaultChunkSize        = 100000
	DefaultMinDuration      = int64(3600)
	DefaultProgressInterval = 2 * time.Second
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			ChunkSize: DefaultChunkSize,
			Workers:   0, // one per CPU
		},
		Detection: DetectionConfig{
			MinDuration: DefaultMinDuration,
			Workers:     0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Progress: ProgressConfig{
			Enabled:  true,
			Interval: DefaultProgressInterval,
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Textfile: "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Command-line flags are applied by the caller on the returned Config.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// VT_CHUNK_SIZE -> ingest.chunk_size
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	"vt_chunk_size":        "ingest.chunk_size",
	"vt_workers":           "ingest.workers",
	"vt_analysis_workers":  "detection.workers",
	"vt_min_duration":      "detection.min_duration",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"log_caller":           "logging.caller",
	"vt_progress":          "progress.enabled",
	"vt_progress_interval": "progress.interval",
	"vt_profile":           "metrics.enabled",
	"vt_metrics_textfile":  "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - VT_CHUNK_SIZE -> ingest.chunk_size
//   - VT_MIN_DURATION -> detection.min_duration
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
