// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

/*
Package models defines the data structures shared by the vessel tracker stages.

Key Components:

  - Position: one validated AIS position report (latitude, longitude, UTC timestamp, vessel id)
  - Stop: the first sample of a stationary interval that lasted at least the minimum duration
  - VesselTrack: per-vessel grouping of positions built once per run
  - FeatureCollection, Feature, Geometry, StopProperties: GeoJSON output document

Lifecycle:

Positions are created only by the AIS message parser (internal/ais) and are never
mutated afterwards. They flow through the ingestion pipeline as values, are grouped
into a VesselTrack by the aggregator, and the stop detector emits Stop values that
the GeoJSON exporter serializes. Nothing in this package outlives a single run.

Usage Example:

	import "github.com/tomtom215/vesseltracker/internal/models"

	pos := models.Position{
	    Latitude:  51.5074,
	    Longitude: -0.1278,
	    Timestamp: 1704067200,
	    VesselID:  "123456789",
	}
	fmt.Println(pos.Time()) // 2024-01-01 00:00:00 +0000 UTC
*/
package models
