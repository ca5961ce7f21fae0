// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package models

// GeoJSON object type names used in the exported document.
const (
	GeoJSONFeatureCollection = "FeatureCollection"
	GeoJSONFeature           = "Feature"
	GeoJSONPoint             = "Point"
)

// FeatureCollection is the top-level GeoJSON document written by the exporter.
// Features is never nil when produced by the exporter so that an empty result
// still serializes as "features": [].
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature describing one stop.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties StopProperties `json:"properties"`
}

// Geometry is a GeoJSON Point. Coordinates are ordered [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// StopProperties carries the stop attributes exported with each feature.
// Datetime is the ISO-8601 (RFC 3339) UTC rendering of Timestamp.
type StopProperties struct {
	VesselID  string `json:"vessel_id"`
	Timestamp int64  `json:"timestamp"`
	Datetime  string `json:"datetime"`
}
