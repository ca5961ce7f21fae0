// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ais

import (
	"math"
	"testing"
)

// FuzzParseLine feeds arbitrary bytes to the line parser
func FuzzParseLine(f *testing.F) {
	f.Add([]byte(`{"Message":{"MessageID":1,"UserID":244660000,"Latitude":52.37,"Longitude":4.89},"UTCTimeStamp":1704067200}`))
	f.Add([]byte(`{"Message":{"MessageID":18,"UserID":"244660000","Latitude":"52.37","Longitude":"4.89"},"UTCTimeStamp":"1704067200"}`))
	f.Add([]byte(`{"Message":{"MessageID":5,"UserID":1},"UTCTimeStamp":1}`)) // static data
	f.Add([]byte(`{"Message":{"MessageID":1,"UserID":1,"Latitude":1e999,"Longitude":0},"UTCTimeStamp":1}`))
	f.Add([]byte(`{"Message":null,"UTCTimeStamp":1}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`{} {}`))
	f.Add([]byte(""))
	f.Add([]byte("\x00"))

	f.Fuzz(func(t *testing.T, line []byte) {
		// Parsing must never panic, and accepted positions must be well-formed
		pos, ok := ParseLine(line)
		if !ok {
			return
		}

		if pos.VesselID == "" {
			t.Error("accepted position with empty vessel id")
		}
		if math.IsNaN(pos.Latitude) || math.IsInf(pos.Latitude, 0) || pos.Latitude < -90 || pos.Latitude > 90 {
			t.Errorf("accepted latitude out of range: %v", pos.Latitude)
		}
		if math.IsNaN(pos.Longitude) || math.IsInf(pos.Longitude, 0) || pos.Longitude < -180 || pos.Longitude > 180 {
			t.Errorf("accepted longitude out of range: %v", pos.Longitude)
		}

		// Parsing is deterministic
		again, okAgain := ParseLine(line)
		if !okAgain || again != pos {
			t.Errorf("ParseLine not deterministic: %+v vs %+v", pos, again)
		}
	})
}
