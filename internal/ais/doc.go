// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package ais decodes AIS message envelopes into validated position reports.
//
// Each input line is one JSON envelope:
//
//	{"Message": {"MessageID": 1, "UserID": 123456789, "Latitude": 51.5, "Longitude": -0.12}, "UTCTimeStamp": 1704067200}
//
// Only position-report message types are accepted:
//
//   - 1, 2, 3: Class A position report
//   - 18: Standard Class B position report
//   - 19: Extended Class B position report
//   - 27: Long-range position report
//
// # Rejection Semantics
//
// Rejection is a normal outcome, not an error. ParsePositionMessage and ParseLine
// return (Position, false) for malformed JSON, unsupported message types, missing
// fields, values that cannot be coerced, non-finite numbers, and coordinates
// outside the valid latitude/longitude ranges. Neither function panics or
// returns an error, which lets the ingestion pipeline drop bad records silently
// without aborting a large batch.
//
// # Coercion Rules
//
//   - MessageID: an integral JSON number (1 and 1.0 are accepted, "1" is not)
//   - Latitude, Longitude: JSON number or numeric string, parsed as float64
//   - UTCTimeStamp: JSON number (truncated to whole seconds) or integer string
//   - UserID: string, or an integral JSON number rendered in base 10
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package ais
