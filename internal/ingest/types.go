// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ingest

import (
	"time"

	"github.com/tomtom215/vesseltracker/internal/models"
)

// IngestStats holds statistics about an ingestion run.
type IngestStats struct {
	// TotalRecords is the line count from CountRecords (0 if never counted).
	TotalRecords int64

	// LinesRead is the number of lines handed to chunk workers.
	LinesRead int64

	// Chunks is the number of chunks whose results were consumed.
	Chunks int64

	// Positions is the number of valid positions yielded.
	Positions int64

	// Rejected is the number of lines the parser rejected.
	Rejected int64

	// WorkerFailures is the number of chunks that failed unexpectedly.
	WorkerFailures int64

	// StartTime is when the stream was started.
	StartTime time.Time

	// EndTime is when the stream was exhausted or closed (zero if still running).
	EndTime time.Time
}

// Duration returns the duration of the ingestion.
func (s *IngestStats) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Progress returns the ingestion progress as a percentage (0-100).
func (s *IngestStats) Progress() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.LinesRead) / float64(s.TotalRecords) * 100
}

// RecordsPerSecond returns the ingestion rate in lines per second.
func (s *IngestStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.LinesRead) / duration
}

// chunkResult is what a worker hands back for one chunk.
type chunkResult struct {
	seq       int
	positions []models.Position
	lines     int
	rejected  int
	err       error
}
