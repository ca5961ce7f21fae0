// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/vesseltracker/internal/config"
	"github.com/tomtom215/vesseltracker/internal/logging"
	"github.com/tomtom215/vesseltracker/internal/metrics"
	"github.com/tomtom215/vesseltracker/internal/progress"
	"github.com/tomtom215/vesseltracker/internal/tracker"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cliFlags holds the parsed command line.
type cliFlags struct {
	minDuration     int64
	chunkSize       int
	workers         int
	analysisWorkers int
	logLevel        string
	logFormat       string
	progress        bool
	profile         bool
	metricsTextfile string

	input  string
	output string
	set    map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("vesseltracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: vesseltracker [flags] input_file output_file")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Detect vessel stops in AIS data and export them as GeoJSON.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.Int64Var(&f.minDuration, "min-duration", config.DefaultMinDuration, "minimum stop duration in seconds")
	fs.IntVar(&f.chunkSize, "chunk-size", config.DefaultChunkSize, "lines per ingestion chunk")
	fs.IntVar(&f.workers, "workers", 0, "ingestion workers (0 = one per CPU)")
	fs.IntVar(&f.analysisWorkers, "analysis-workers", 0, "stop detection workers (0 = one per CPU)")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "console", "log format: json or console")
	fs.BoolVar(&f.progress, "progress", true, "log progress while running")
	fs.BoolVar(&f.profile, "profile", false, "log per-section timing and memory deltas")
	fs.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected input_file and output_file, got %d arguments", fs.NArg())
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	f.input = fs.Arg(0)
	f.output = fs.Arg(1)
	return f, nil
}

// apply overrides cfg with the flags given explicitly on the command line.
func (f *cliFlags) apply(cfg *config.Config) {
	if f.set["min-duration"] {
		cfg.Detection.MinDuration = f.minDuration
	}
	if f.set["chunk-size"] {
		cfg.Ingest.ChunkSize = f.chunkSize
	}
	if f.set["workers"] {
		cfg.Ingest.Workers = f.workers
	}
	if f.set["analysis-workers"] {
		cfg.Detection.Workers = f.analysisWorkers
	}
	if f.set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if f.set["log-format"] {
		cfg.Logging.Format = f.logFormat
	}
	if f.set["progress"] {
		cfg.Progress.Enabled = f.progress
	}
	if f.set["profile"] {
		cfg.Metrics.Enabled = f.profile
	}
	if f.set["metrics-textfile"] {
		cfg.Metrics.Textfile = f.metricsTextfile
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logCfg := cfg.Logging.LoggingConfig()
	logCfg.Output = stderr
	logging.Init(logCfg)

	input, err := filepath.Abs(flags.input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: resolve input path: %v\n", err)
		return exitError
	}
	output, err := filepath.Abs(flags.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error: resolve output path: %v\n", err)
		return exitError
	}

	opts := tracker.Options{
		InputPath:       input,
		OutputPath:      output,
		MinDuration:     cfg.Detection.MinDuration,
		ChunkSize:       cfg.Ingest.ChunkSize,
		Workers:         cfg.IngestWorkers(),
		AnalysisWorkers: cfg.AnalysisWorkers(),
	}
	if cfg.Progress.Enabled {
		opts.Reporter = progress.NewLogReporter(cfg.Progress.Interval)
	}

	var profiler *metrics.PrometheusProfiler
	if cfg.Metrics.Active() {
		profiler = metrics.NewPrometheusProfiler()
		opts.Profiler = profiler
	}

	res, err := tracker.Run(ctx, opts)

	if profiler != nil {
		if cfg.Metrics.Enabled {
			profiler.LogSummary()
		}
		if cfg.Metrics.Textfile != "" {
			if writeErr := profiler.WriteTextfile(cfg.Metrics.Textfile); writeErr != nil {
				logging.Warn().Err(writeErr).Str("path", cfg.Metrics.Textfile).Msg("Failed to write metrics textfile")
			}
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "Processing complete. Found %d stops.\n", res.Stops)
	return exitOK
}

// loadConfig layers the command-line flags over the koanf configuration and
// validates the result.
func loadConfig(flags *cliFlags) (*config.Config, error) {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
