// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package progress

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vesseltracker/internal/logging"
)

// DefaultInterval is the minimum time between two progress lines of one stage.
const DefaultInterval = 2 * time.Second

type stageState struct {
	snapshot  Snapshot
	sometimes *rate.Sometimes
}

// LogReporter writes progress as structured log lines. Advance updates are
// throttled per stage so a multi-million record run logs a handful of lines.
type LogReporter struct {
	mu       sync.Mutex
	logger   zerolog.Logger
	interval time.Duration
	stages   map[Stage]*stageState
	now      func() time.Time
}

// NewLogReporter creates a LogReporter that logs at most once per interval per stage.
// A non-positive interval uses DefaultInterval.
func NewLogReporter(interval time.Duration) *LogReporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &LogReporter{
		logger:   logging.WithComponent("progress"),
		interval: interval,
		stages:   make(map[Stage]*stageState),
		now:      time.Now,
	}
}

// Start begins tracking a stage.
func (r *LogReporter) Start(stage Stage, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if total < 0 {
		total = 0
	}
	r.stages[stage] = &stageState{
		snapshot: Snapshot{
			Stage:     stage,
			Total:     total,
			StartTime: r.now(),
		},
		sometimes: &rate.Sometimes{Interval: r.interval},
	}

	event := r.logger.Info().Str("stage", string(stage))
	if total > 0 {
		event = event.Str("total", humanize.Comma(total))
	}
	event.Msg("Stage started")
}

// Advance records n completed units for a stage.
func (r *LogReporter) Advance(stage Stage, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stages[stage]
	if !ok {
		return
	}
	st.snapshot.Done += n

	st.sometimes.Do(func() {
		r.logSummary(st.snapshot.ToSummary(r.now()), "Progress")
	})
}

// Finish marks a stage complete and logs its final counters.
func (r *LogReporter) Finish(stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stages[stage]
	if !ok {
		return
	}
	if st.snapshot.EndTime.IsZero() {
		st.snapshot.EndTime = r.now()
	}
	r.logSummary(st.snapshot.ToSummary(r.now()), "Stage completed")
}

// Snapshot returns a copy of the counters for a stage.
func (r *LogReporter) Snapshot(stage Stage) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stages[stage]
	if !ok {
		return Snapshot{}, false
	}
	return st.snapshot, true
}

func (r *LogReporter) logSummary(s *Summary, msg string) {
	event := r.logger.Info().
		Str("stage", string(s.Stage)).
		Str("status", s.Status).
		Str("done", humanize.Comma(s.Done)).
		Str("rate", humanize.CommafWithDigits(s.UnitsPerSec, 1)+"/s").
		Float64("elapsed_seconds", s.ElapsedSeconds)

	if s.Total > 0 {
		event = event.
			Str("total", humanize.Comma(s.Total)).
			Float64("percent", s.Percent)
	}
	if s.EstimatedRemain > 0 {
		event = event.Dur("eta", time.Duration(s.EstimatedRemain*float64(time.Second)))
	}
	event.Msg(msg)
}
