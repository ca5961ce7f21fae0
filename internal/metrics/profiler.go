// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package metrics

import (
	"time"
)

// Profiled section names.
const (
	SectionMessageProcessing = "message_processing"
	SectionVesselAnalysis    = "vessel_analysis"
	SectionGeoJSONExport     = "geojson_export"
)

// Profiler observes a run. Section starts timing a named section and returns
// the function that ends it. RecordChunk is called once per ingestion chunk and
// RecordVessel once per analyzed vessel.
type Profiler interface {
	Section(name string) (end func())
	RecordChunk(lines, positions, rejected int, failed bool)
	RecordVessel(stops int, failed bool)
}

// SectionResult holds the measurements of one completed section.
type SectionResult struct {
	Name        string
	Duration    time.Duration
	MemoryDelta int64
}

// Nop is a Profiler that records nothing.
type Nop struct{}

func (Nop) Section(string) func()           { return func() {} }
func (Nop) RecordChunk(int, int, int, bool) {}
func (Nop) RecordVessel(int, bool)          {}

// OrNop returns p, or Nop when p is nil.
func OrNop(p Profiler) Profiler {
	if p == nil {
		return Nop{}
	}
	return p
}
