// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/vesseltracker/internal/analysis"
	"github.com/tomtom215/vesseltracker/internal/geojson"
	"github.com/tomtom215/vesseltracker/internal/ingest"
	"github.com/tomtom215/vesseltracker/internal/logging"
	"github.com/tomtom215/vesseltracker/internal/metrics"
	"github.com/tomtom215/vesseltracker/internal/models"
	"github.com/tomtom215/vesseltracker/internal/progress"
)

// ErrNoOutputPath is returned when Options.OutputPath is empty.
var ErrNoOutputPath = errors.New("output path is required")

// Options configures a single run.
type Options struct {
	InputPath  string
	OutputPath string

	// MinDuration is the minimum stop length in seconds.
	MinDuration int64

	// ChunkSize and Workers tune ingestion; zero selects the ingest defaults.
	ChunkSize int
	Workers   int

	// AnalysisWorkers bounds per-vessel parallelism; zero means one per CPU.
	AnalysisWorkers int

	// Reporter receives stage progress. When set, the input is counted first
	// so that the processing stage has a total.
	Reporter progress.Reporter

	// Profiler receives section timings and pipeline counters.
	Profiler metrics.Profiler
}

// Result summarizes a completed run.
type Result struct {
	OutputPath string
	Ingest     ingest.IngestStats
	Vessels    int
	Positions  int
	Stops      int

	// AnalysisFailures is the number of vessels whose analysis failed.
	AnalysisFailures int

	Duration time.Duration
}

// Run executes the pipeline described by opts. It returns an error only for
// fatal conditions: bad options, an unreadable input, cancellation, or a
// failed output write.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	ctx = logging.ContextWithNewCorrelationID(ctx)
	// Every stage logging through ctx carries the input path.
	runLogger := logging.LoggerFromContext(ctx).With().Str("input", opts.InputPath).Logger()
	ctx = logging.ContextWithLogger(ctx, runLogger)
	logger := logging.Ctx(ctx)

	if opts.OutputPath == "" {
		return nil, ErrNoOutputPath
	}
	if opts.MinDuration < 0 {
		return nil, fmt.Errorf("min duration must not be negative: %d", opts.MinDuration)
	}

	reporter := progress.OrNop(opts.Reporter)
	profiler := metrics.OrNop(opts.Profiler)

	proc, err := ingest.NewProcessor(opts.InputPath, ingestOptions(opts, reporter, profiler)...)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("output", opts.OutputPath).
		Int64("min_duration", opts.MinDuration).
		Msg("Processing started")

	if opts.Reporter != nil {
		if _, err := proc.CountRecords(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("count records: %w", ctx.Err())
			}
			// Counting only feeds progress totals; ingestion reports the real failure.
			logger.Warn().Err(err).Msg("Could not count input records")
		}
	}

	tracks, err := collect(ctx, proc, profiler)
	if err != nil {
		return nil, err
	}

	res := &Result{
		OutputPath: opts.OutputPath,
		Ingest:     proc.Stats(),
		Vessels:    tracks.VesselCount(),
		Positions:  tracks.PositionCount(),
	}

	analyzer := analysis.NewAnalyzer(opts.MinDuration,
		analysis.WithWorkers(opts.AnalysisWorkers),
		analysis.WithReporter(reporter),
		analysis.WithProfiler(profiler),
	)

	endAnalysis := profiler.Section(metrics.SectionVesselAnalysis)
	stops, err := analyzer.Analyze(ctx, tracks)
	endAnalysis()
	if ctx.Err() != nil {
		return nil, err
	}
	if err != nil {
		res.AnalysisFailures = countJoined(err)
		logger.Error().
			Err(err).
			Int("failed_vessels", res.AnalysisFailures).
			Msg("Some vessels could not be analyzed")
	}
	res.Stops = len(stops)

	exporter := geojson.NewExporter(opts.OutputPath, geojson.WithReporter(reporter))

	endExport := profiler.Section(metrics.SectionGeoJSONExport)
	err = exporter.Export(ctx, stops)
	endExport()
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)

	logger.Info().
		Int("vessels", res.Vessels).
		Int("positions", res.Positions).
		Int64("rejected", res.Ingest.Rejected).
		Int("stops", res.Stops).
		Dur("duration", res.Duration).
		Msg("Processing complete")

	return res, nil
}

// collect streams the input into per-vessel tracks. A read failure on the
// input is fatal; chunk failures have already been logged by the stream.
func collect(ctx context.Context, proc *ingest.Processor, profiler metrics.Profiler) (models.VesselTrack, error) {
	end := profiler.Section(metrics.SectionMessageProcessing)
	defer end()

	stream, err := proc.Positions(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stream.Close() }()

	tracks := analysis.GroupByVessel(stream.All())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("process messages: %w", err)
	}

	if streamErr := stream.Err(); streamErr != nil {
		var inputErr *ingest.InputError
		if errors.As(streamErr, &inputErr) {
			return nil, inputErr
		}
		logging.Ctx(ctx).Warn().
			Int64("failed_chunks", proc.Stats().WorkerFailures).
			Msg("Continuing without failed chunks")
	}

	return tracks, nil
}

func ingestOptions(opts Options, reporter progress.Reporter, profiler metrics.Profiler) []ingest.Option {
	options := []ingest.Option{
		ingest.WithReporter(reporter),
		ingest.WithProfiler(profiler),
	}
	if opts.ChunkSize > 0 {
		options = append(options, ingest.WithChunkSize(opts.ChunkSize))
	}
	if opts.Workers > 0 {
		options = append(options, ingest.WithWorkers(opts.Workers))
	}
	return options
}

// countJoined returns how many errors an errors.Join result holds.
func countJoined(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
