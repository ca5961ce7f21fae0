// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/vesseltracker/internal/validation"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Ingest.ChunkSize != 100000 {
		t.Errorf("Ingest.ChunkSize = %d, want 100000", cfg.Ingest.ChunkSize)
	}
	if cfg.Ingest.Workers != 0 {
		t.Errorf("Ingest.Workers = %d, want 0", cfg.Ingest.Workers)
	}
	if cfg.Detection.MinDuration != 3600 {
		t.Errorf("Detection.MinDuration = %d, want 3600", cfg.Detection.MinDuration)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if !cfg.Progress.Enabled {
		t.Error("Progress.Enabled should be true by default")
	}
	if cfg.Progress.Interval != 2*time.Second {
		t.Errorf("Progress.Interval = %v, want 2s", cfg.Progress.Interval)
	}
	if cfg.Metrics.Active() {
		t.Error("Metrics should be inactive by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		envKey   string
		expected string
	}{
		{"VT_CHUNK_SIZE", "ingest.chunk_size"},
		{"VT_WORKERS", "ingest.workers"},
		{"VT_ANALYSIS_WORKERS", "detection.workers"},
		{"VT_MIN_DURATION", "detection.min_duration"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"LOG_CALLER", "logging.caller"},
		{"VT_PROGRESS", "progress.enabled"},
		{"VT_PROGRESS_INTERVAL", "progress.interval"},
		{"VT_PROFILE", "metrics.enabled"},
		{"VT_METRICS_TEXTFILE", "metrics.textfile"},
		{"vt_chunk_size", "ingest.chunk_size"},
		// Unmapped keys are dropped
		{"HOME", ""},
		{"PATH", ""},
		{"VT_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := envTransformFunc(tt.envKey); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.envKey, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("CONFIG_PATH takes priority", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("ingest:\n  chunk_size: 10\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing CONFIG_PATH falls through", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
		orig := DefaultConfigPaths
		DefaultConfigPaths = []string{filepath.Join(t.TempDir(), "also-absent.yaml")}
		t.Cleanup(func() { DefaultConfigPaths = orig })

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("default path found", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		orig := DefaultConfigPaths
		DefaultConfigPaths = []string{filepath.Join(t.TempDir(), "config.yaml"), path}
		t.Cleanup(func() { DefaultConfigPaths = orig })

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})
}

// isolate points the loader at an empty config file so a config.yaml on the
// test machine cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	return path
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("VT_CHUNK_SIZE", "5000")
	t.Setenv("VT_WORKERS", "3")
	t.Setenv("VT_MIN_DURATION", "1800")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("VT_PROGRESS", "false")
	t.Setenv("VT_PROGRESS_INTERVAL", "5s")
	t.Setenv("VT_PROFILE", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Ingest.ChunkSize != 5000 {
		t.Errorf("Ingest.ChunkSize = %d, want 5000", cfg.Ingest.ChunkSize)
	}
	if cfg.IngestWorkers() != 3 {
		t.Errorf("IngestWorkers() = %d, want 3", cfg.IngestWorkers())
	}
	if cfg.Detection.MinDuration != 1800 {
		t.Errorf("Detection.MinDuration = %d, want 1800", cfg.Detection.MinDuration)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug (normalized)", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Progress.Enabled {
		t.Error("Progress.Enabled should be false")
	}
	if cfg.Progress.Interval != 5*time.Second {
		t.Errorf("Progress.Interval = %v, want 5s", cfg.Progress.Interval)
	}
	if !cfg.Metrics.Active() {
		t.Error("Metrics should be active when VT_PROFILE=true")
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := isolate(t)
	writeConfig(t, path, `
ingest:
  chunk_size: 250
  workers: 2
detection:
  min_duration: 900
  workers: 4
logging:
  level: warn
progress:
  interval: 10s
metrics:
  textfile: /tmp/vesseltracker.prom
`)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Ingest.ChunkSize != 250 {
		t.Errorf("Ingest.ChunkSize = %d, want 250", cfg.Ingest.ChunkSize)
	}
	if cfg.Detection.MinDuration != 900 {
		t.Errorf("Detection.MinDuration = %d, want 900", cfg.Detection.MinDuration)
	}
	if cfg.AnalysisWorkers() != 4 {
		t.Errorf("AnalysisWorkers() = %d, want 4", cfg.AnalysisWorkers())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	// Unset keys keep their defaults
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if !cfg.Progress.Enabled {
		t.Error("Progress.Enabled should keep default true")
	}
	if cfg.Progress.Interval != 10*time.Second {
		t.Errorf("Progress.Interval = %v, want 10s", cfg.Progress.Interval)
	}
	if !cfg.Metrics.Active() {
		t.Error("a metrics textfile should activate metrics")
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := isolate(t)
	writeConfig(t, path, "detection:\n  min_duration: 900\n")
	t.Setenv("VT_MIN_DURATION", "60")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Detection.MinDuration != 60 {
		t.Errorf("Detection.MinDuration = %d, want 60 (env wins)", cfg.Detection.MinDuration)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantField string
	}{
		{"zero chunk size", map[string]string{"VT_CHUNK_SIZE": "0"}, "ingest.chunk_size"},
		{"negative workers", map[string]string{"VT_WORKERS": "-1"}, "ingest.workers"},
		{"negative analysis workers", map[string]string{"VT_ANALYSIS_WORKERS": "-2"}, "detection.workers"},
		{"negative min duration", map[string]string{"VT_MIN_DURATION": "-5"}, "detection.min_duration"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "logging.level"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "logging.format"},
		{"interval too short", map[string]string{"VT_PROGRESS_INTERVAL": "1ms"}, "progress.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var structErr *validation.StructError
			if !errors.As(err, &structErr) {
				t.Fatalf("expected *validation.StructError in chain, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should name %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestLoadWithKoanfMalformedFile(t *testing.T) {
	path := isolate(t)
	writeConfig(t, path, "ingest: [unterminated\n")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, runtime.NumCPU()},
		{-3, runtime.NumCPU()},
		{1, 1},
		{16, 16},
	}
	for _, tt := range tests {
		if got := resolveWorkers(tt.in); got != tt.want {
			t.Errorf("resolveWorkers(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoggingConfigConversion(t *testing.T) {
	l := LoggingConfig{Level: "debug", Format: "json", Caller: true}
	got := l.LoggingConfig()

	if got.Level != "debug" || got.Format != "json" || !got.Caller {
		t.Errorf("LoggingConfig() = %+v", got)
	}
	if !got.Timestamp {
		t.Error("Timestamp should keep the logging default")
	}
	if got.Output == nil {
		t.Error("Output should keep the logging default")
	}
}
