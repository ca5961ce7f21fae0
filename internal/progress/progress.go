// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package progress reports how far each stage of a run has advanced.
//
// Progress is an optional observer: the pipeline stages call a Reporter but
// never depend on it. Nop is the default. LogReporter emits throttled
// structured log lines through internal/logging.
package progress

// Stage identifies one phase of a run.
type Stage string

// Stages in the order a run passes through them.
const (
	StageCounting   Stage = "counting messages"
	StageProcessing Stage = "processing messages"
	StageAnalyzing  Stage = "analyzing vessels"
	StageExporting  Stage = "creating GeoJSON features"
)

// Reporter receives progress updates for the stages of a run.
//
// Start is called once per stage with the expected total, or a value <= 0 when the
// total is unknown. Advance adds n completed units. Finish marks the stage done.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Start(stage Stage, total int64)
	Advance(stage Stage, n int64)
	Finish(stage Stage)
}

// Nop is a Reporter that discards all updates.
type Nop struct{}

func (Nop) Start(Stage, int64)   {}
func (Nop) Advance(Stage, int64) {}
func (Nop) Finish(Stage)         {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}
