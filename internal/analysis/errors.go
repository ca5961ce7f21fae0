// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package analysis

import (
	"fmt"
)

// WorkerError reports a vessel whose analysis failed unexpectedly. That vessel
// contributes no stops; other vessels are unaffected.
type WorkerError struct {
	VesselID string
	Err      error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("vessel %s: %v", e.VesselID, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
