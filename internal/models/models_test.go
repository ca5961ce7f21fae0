// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestPositionTime(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		want time.Time
	}{
		{"epoch", 0, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"new year 2024", 1704067200, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"before epoch", -3600, time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Position{Timestamp: tt.ts}.Time()
			if !got.Equal(tt.want) {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Time() location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestVesselTrackCounts(t *testing.T) {
	track := VesselTrack{
		"1": {{VesselID: "1"}, {VesselID: "1"}},
		"2": {{VesselID: "2"}},
		"3": nil,
	}

	if got := track.VesselCount(); got != 3 {
		t.Errorf("VesselCount() = %d, want 3", got)
	}
	if got := track.PositionCount(); got != 3 {
		t.Errorf("PositionCount() = %d, want 3", got)
	}

	var empty VesselTrack
	if empty.VesselCount() != 0 || empty.PositionCount() != 0 {
		t.Error("nil track should report zero counts")
	}
}

func TestFeatureJSONShape(t *testing.T) {
	fc := FeatureCollection{
		Type: GeoJSONFeatureCollection,
		Features: []Feature{{
			Type: GeoJSONFeature,
			Geometry: Geometry{
				Type:        GeoJSONPoint,
				Coordinates: [2]float64{4.89, 52.37},
			},
			Properties: StopProperties{
				VesselID:  "244660000",
				Timestamp: 1704067200,
				Datetime:  "2024-01-01T00:00:00Z",
			},
		}},
	}

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{
		`"type":"FeatureCollection"`,
		`"type":"Feature"`,
		`"type":"Point"`,
		`"coordinates":[4.89,52.37]`,
		`"vessel_id":"244660000"`,
		`"timestamp":1704067200`,
		`"datetime":"2024-01-01T00:00:00Z"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded document missing %s: %s", want, data)
		}
	}
}

func TestEmptyFeatureCollection(t *testing.T) {
	data, err := json.Marshal(FeatureCollection{Type: GeoJSONFeatureCollection, Features: []Feature{}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"type":"FeatureCollection","features":[]}` {
		t.Errorf("got %s", data)
	}
}
