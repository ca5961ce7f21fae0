// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package analysis

import (
	"cmp"
	"slices"

	"github.com/tomtom215/vesseltracker/internal/geo"
	"github.com/tomtom215/vesseltracker/internal/models"
)

const (
	// DefaultMinDuration is the default minimum stop length in seconds.
	DefaultMinDuration int64 = 3600

	// StopSpeedThresholdKnots is the speed below which a vessel is considered stationary.
	StopSpeedThresholdKnots = 1.0
)

// DetectStops returns the first sample of every interval in which the vessel
// moved slower than StopSpeedThresholdKnots for at least minDuration seconds.
// positions is not modified. Fewer than two positions yield no stops.
func DetectStops(positions []models.Position, minDuration int64) []models.Stop {
	if len(positions) < 2 {
		return nil
	}

	sorted := slices.Clone(positions)
	slices.SortStableFunc(sorted, func(a, b models.Position) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	var (
		stops     []models.Stop
		inStop    bool
		stopStart models.Position
	)

	prev := sorted[0]
	for _, pos := range sorted[1:] {
		speed := geo.Speed(prev, pos)

		switch {
		case speed < StopSpeedThresholdKnots && !inStop:
			inStop = true
			stopStart = prev
		case speed >= StopSpeedThresholdKnots && inStop:
			if pos.Timestamp-stopStart.Timestamp >= minDuration {
				stops = append(stops, stopStart)
			}
			inStop = false
		}

		prev = pos
	}

	// A stop still open at the end of the track counts if it is long enough.
	if inStop && prev.Timestamp-stopStart.Timestamp >= minDuration {
		stops = append(stops, stopStart)
	}

	return stops
}
