// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package geo provides great-circle distance and ground speed calculations
// between vessel positions.
package geo

import (
	"math"

	"github.com/tomtom215/vesseltracker/internal/models"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371e3

	// MetersPerSecondPerKnot converts m/s to knots (1 knot = 0.514444 m/s).
	MetersPerSecondPerKnot = 0.514444
)

// Distance calculates the great-circle distance in meters between two points
// using the haversine formula. The atan2 form keeps the result stable for both
// very close and antipodal points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)

	// Rounding can push a marginally above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceBetween returns the distance in meters between two positions.
func DistanceBetween(a, b models.Position) float64 {
	return Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Speed returns the ground speed in knots needed to travel from p1 to p2.
//
// A zero timestamp delta yields exactly 0: simultaneous or duplicate reports are
// treated as "not moving". Callers are expected to pass time-ordered positions;
// a negative delta is not special-cased.
func Speed(p1, p2 models.Position) float64 {
	timeDiff := p2.Timestamp - p1.Timestamp
	if timeDiff == 0 {
		return 0
	}

	metersPerSecond := DistanceBetween(p1, p2) / float64(timeDiff)
	return metersPerSecond / MetersPerSecondPerKnot
}
