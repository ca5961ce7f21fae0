// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package analysis

import (
	"iter"

	"github.com/tomtom215/vesseltracker/internal/models"
)

// Aggregator partitions positions by vessel id. It does not sort, filter or
// deduplicate. Not safe for concurrent use.
type Aggregator struct {
	tracks models.VesselTrack
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{tracks: make(models.VesselTrack)}
}

// Add appends a position to its vessel's track.
func (a *Aggregator) Add(p models.Position) {
	a.tracks[p.VesselID] = append(a.tracks[p.VesselID], p)
}

// Tracks returns the grouped positions.
func (a *Aggregator) Tracks() models.VesselTrack {
	return a.tracks
}

// GroupByVessel consumes seq once and groups its positions by vessel id.
func GroupByVessel(seq iter.Seq[models.Position]) models.VesselTrack {
	agg := NewAggregator()
	for p := range seq {
		agg.Add(p)
	}
	return agg.Tracks()
}
