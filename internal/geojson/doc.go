// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package geojson serializes stop events to a GeoJSON FeatureCollection and
// writes it atomically.
//
// # Document Shape
//
//	{
//	  "type": "FeatureCollection",
//	  "features": [
//	    {
//	      "type": "Feature",
//	      "geometry": {"type": "Point", "coordinates": [4.89, 52.37]},
//	      "properties": {"vessel_id": "244123456", "timestamp": 1704067200, "datetime": "2024-01-01T00:00:00Z"}
//	    }
//	  ]
//	}
//
// Coordinates are [longitude, latitude]. Features keep the order of the input
// stops. An empty input produces "features": [].
//
// # Write Discipline
//
// The document is encoded into a temporary file in the destination directory,
// synced, closed and renamed over the destination. Readers either see the
// previous file or the complete new one, never a partial write. The temporary
// file is removed on any failure. Failures are returned as *OutputError with a
// remediation hint for permission and disk-space problems.
package geojson
