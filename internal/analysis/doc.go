// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package analysis groups positions by vessel and detects stops.
//
// A stop is a maximal interval during which consecutive-pair ground speed stays
// below StopSpeedThresholdKnots for at least the minimum duration. Only the
// first sample of each qualifying interval is reported.
//
// # State Machine
//
// DetectStops sorts a vessel's positions by timestamp (stable) and walks
// consecutive pairs:
//
//	NO_STOP --speed < 1.0 kn--> IN_STOP   (stop start = previous sample)
//	IN_STOP --speed >= 1.0 kn--> NO_STOP  (emit start if pos.ts - start.ts >= min)
//
// After the last pair, a stop that is still open is emitted if the last sample
// is at least the minimum duration after its start.
//
// # Parallelism
//
// Analyzer runs DetectStops for each vessel on a bounded worker pool. Each
// worker owns one vessel's slice; results are merged in ascending vessel-id
// order, each vessel's stops in chronological order, so output is deterministic.
package analysis
