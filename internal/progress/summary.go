// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package progress

import (
	"time"
)

// Snapshot holds the counters of a single stage at a point in time.
type Snapshot struct {
	// Stage is the stage these counters belong to.
	Stage Stage

	// Total is the expected number of units (0 if unknown).
	Total int64

	// Done is the number of completed units.
	Done int64

	// StartTime is when the stage started.
	StartTime time.Time

	// EndTime is when the stage finished (zero if still running).
	EndTime time.Time
}

// Duration returns the elapsed time of the stage. A running stage is measured
// up to now.
func (s *Snapshot) Duration(now time.Time) time.Duration {
	if s.EndTime.IsZero() {
		return now.Sub(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Percent returns the completion percentage (0-100), or 0 when the total is unknown.
func (s *Snapshot) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Done) / float64(s.Total) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// UnitsPerSecond returns the processing rate as of now.
func (s *Snapshot) UnitsPerSecond(now time.Time) float64 {
	duration := s.Duration(now).Seconds()
	if duration <= 0 {
		return 0
	}
	return float64(s.Done) / duration
}

// Summary is a derived view of a Snapshot used for reporting.
type Summary struct {
	Stage           Stage   `json:"stage"`
	Status          string  `json:"status"`
	Percent         float64 `json:"percent"`
	Total           int64   `json:"total"`
	Done            int64   `json:"done"`
	UnitsPerSec     float64 `json:"units_per_second"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	EstimatedRemain float64 `json:"estimated_remaining_seconds"`
}

// ToSummary converts a Snapshot to a Summary with fields calculated as of now.
func (s *Snapshot) ToSummary(now time.Time) *Summary {
	summary := &Summary{
		Stage:          s.Stage,
		Percent:        s.Percent(),
		Total:          s.Total,
		Done:           s.Done,
		UnitsPerSec:    s.UnitsPerSecond(now),
		ElapsedSeconds: s.Duration(now).Seconds(),
	}

	running := s.EndTime.IsZero()
	if running {
		summary.Status = "running"
	} else {
		summary.Status = "completed"
	}

	// Estimate remaining time
	if running && s.Total > s.Done && summary.UnitsPerSec > 0 {
		summary.EstimatedRemain = float64(s.Total-s.Done) / summary.UnitsPerSec
	}

	return summary
}
