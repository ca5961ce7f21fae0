// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package analysis

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/vesseltracker/internal/logging"
	"github.com/tomtom215/vesseltracker/internal/metrics"
	"github.com/tomtom215/vesseltracker/internal/models"
	"github.com/tomtom215/vesseltracker/internal/progress"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkers sets the number of vessels analyzed concurrently.
// Values below 1 use runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithReporter sets the progress observer.
func WithReporter(r progress.Reporter) Option {
	return func(a *Analyzer) {
		a.reporter = progress.OrNop(r)
	}
}

// WithProfiler sets the profiling observer.
func WithProfiler(p metrics.Profiler) Option {
	return func(a *Analyzer) {
		a.profiler = metrics.OrNop(p)
	}
}

// Analyzer runs stop detection for every vessel of a track on a worker pool.
type Analyzer struct {
	minDuration int64
	workers     int
	reporter    progress.Reporter
	profiler    metrics.Profiler
	logger      zerolog.Logger

	// detect is the per-vessel detector; replaced in tests.
	detect func([]models.Position, int64) []models.Stop
}

// NewAnalyzer creates an analyzer with the given minimum stop duration in seconds.
func NewAnalyzer(minDuration int64, opts ...Option) *Analyzer {
	a := &Analyzer{
		minDuration: minDuration,
		workers:     runtime.NumCPU(),
		reporter:    progress.Nop{},
		profiler:    metrics.Nop{},
		logger:      logging.WithComponent("analysis"),
		detect:      DetectStops,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.NumCPU()
	}
	return a
}

// MinDuration returns the minimum stop duration in seconds.
func (a *Analyzer) MinDuration() int64 {
	return a.minDuration
}

// Analyze detects stops for every vessel in tracks. Stops are ordered by vessel
// id, then chronologically. Per-vessel failures are returned joined as
// *WorkerError values alongside the stops of every other vessel; only context
// cancellation returns a nil slice.
func (a *Analyzer) Analyze(ctx context.Context, tracks models.VesselTrack) ([]models.Stop, error) {
	vesselIDs := slices.Sorted(maps.Keys(tracks))
	perVessel := make([][]models.Stop, len(vesselIDs))
	failures := make([]error, len(vesselIDs))

	a.reporter.Start(progress.StageAnalyzing, int64(len(vesselIDs)))
	defer a.reporter.Finish(progress.StageAnalyzing)

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, id := range vesselIDs {
		if ctx.Err() != nil {
			break
		}
		positions := tracks[id]
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			stops, err := a.analyzeVessel(id, positions)
			perVessel[i] = stops
			failures[i] = err

			a.profiler.RecordVessel(len(stops), err != nil)
			a.reporter.Advance(progress.StageAnalyzing, 1)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze vessels: %w", err)
	}

	total := 0
	for _, s := range perVessel {
		total += len(s)
	}
	stops := make([]models.Stop, 0, total)
	for _, s := range perVessel {
		stops = append(stops, s...)
	}

	err := errors.Join(failures...)
	logging.Ctx(ctx).Info().
		Int("vessels", len(vesselIDs)).
		Int("stops", len(stops)).
		Int64("min_duration", a.minDuration).
		Bool("failures", err != nil).
		Msg("Vessel analysis completed")

	return stops, err
}

// analyzeVessel runs the detector for one vessel, recovering a panic into a
// *WorkerError.
func (a *Analyzer) analyzeVessel(id string, positions []models.Position) (stops []models.Stop, err error) {
	defer func() {
		if r := recover(); r != nil {
			stops = nil
			err = &WorkerError{VesselID: id, Err: fmt.Errorf("panic: %v", r)}
			a.logger.Error().Err(err).Str("vessel_id", id).Msg("Vessel analysis failed")
		}
	}()

	return a.detect(positions, a.minDuration), nil
}
