// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package models

import (
	"time"
)

// Position represents a single vessel position report decoded from an AIS message.
//
// A Position is only ever constructed by the message parser and all four fields
// are guaranteed to be present and valid. It is passed by value and never mutated.
//
// Key Fields:
//   - Latitude: degrees, -90..90
//   - Longitude: degrees, -180..180
//   - Timestamp: seconds since the Unix epoch, UTC
//   - VesselID: opaque vessel identifier (MMSI), always a string
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
	VesselID  string  `json:"vessel_id"`
}

// Time returns the report timestamp as a UTC time.
func (p Position) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// Stop marks the first sample of a stationary interval that lasted at least the
// configured minimum duration. It is the representative sample itself, not an
// aggregate of the interval.
type Stop = Position

// VesselTrack maps a vessel identifier to that vessel's positions.
// Positions are kept in arrival order; consumers that need time order must sort.
type VesselTrack map[string][]Position

// VesselCount returns the number of distinct vessels in the track.
func (t VesselTrack) VesselCount() int {
	return len(t)
}

// PositionCount returns the total number of positions across all vessels.
func (t VesselTrack) PositionCount() int {
	total := 0
	for _, positions := range t {
		total += len(positions)
	}
	return total
}
