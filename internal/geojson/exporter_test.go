// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package geojson

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vesseltracker/internal/models"
)

func sampleStops(n int) []models.Stop {
	stops := make([]models.Stop, n)
	for i := range stops {
		stops[i] = models.Stop{
			Latitude:  52.37 + float64(i)*0.01,
			Longitude: 4.89 - float64(i)*0.01,
			Timestamp: 1704067200 + int64(i)*3600,
			VesselID:  fmt.Sprintf("24412345%d", i),
		}
	}
	return stops
}

func readDocument(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	return doc
}

func TestFeatureFromStop(t *testing.T) {
	stop := models.Stop{Latitude: 52.37, Longitude: 4.89, Timestamp: 1704067200, VesselID: "244123456"}

	f := FeatureFromStop(stop)

	if f.Type != "Feature" || f.Geometry.Type != "Point" {
		t.Errorf("unexpected types: %q / %q", f.Type, f.Geometry.Type)
	}
	if f.Geometry.Coordinates != [2]float64{4.89, 52.37} {
		t.Errorf("Coordinates = %v, want [lon, lat] = [4.89 52.37]", f.Geometry.Coordinates)
	}
	if f.Properties.VesselID != "244123456" || f.Properties.Timestamp != 1704067200 {
		t.Errorf("unexpected properties: %+v", f.Properties)
	}
	if f.Properties.Datetime != "2024-01-01T00:00:00Z" {
		t.Errorf("Datetime = %q, want 2024-01-01T00:00:00Z", f.Properties.Datetime)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		stops []models.Stop
	}{
		{"nil input", nil},
		{"empty input", []models.Stop{}},
		{"one stop", sampleStops(1)},
		{"many stops", sampleStops(25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := Build(tt.stops)
			if fc.Type != "FeatureCollection" {
				t.Errorf("Type = %q", fc.Type)
			}
			if fc.Features == nil {
				t.Fatal("Features must be non-nil so it encodes as []")
			}
			if len(fc.Features) != len(tt.stops) {
				t.Fatalf("len(Features) = %d, want %d", len(fc.Features), len(tt.stops))
			}
			for i, f := range fc.Features {
				if f.Properties.Timestamp != tt.stops[i].Timestamp {
					t.Errorf("feature %d out of order", i)
				}
			}
		})
	}
}

func TestExport_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		t.Run(fmt.Sprintf("%d stops", n), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stops.geojson")
			stops := sampleStops(n)

			if err := Export(stops, path); err != nil {
				t.Fatalf("Export failed: %v", err)
			}

			doc := readDocument(t, path)
			if doc["type"] != "FeatureCollection" {
				t.Errorf("type = %v", doc["type"])
			}
			features, ok := doc["features"].([]any)
			if !ok {
				t.Fatalf("features is %T, want array", doc["features"])
			}
			if len(features) != n {
				t.Fatalf("len(features) = %d, want %d", len(features), n)
			}

			for i, raw := range features {
				f := raw.(map[string]any)
				coords := f["geometry"].(map[string]any)["coordinates"].([]any)
				if coords[0].(float64) != stops[i].Longitude || coords[1].(float64) != stops[i].Latitude {
					t.Errorf("feature %d coordinates = %v", i, coords)
				}
				props := f["properties"].(map[string]any)
				if props["vessel_id"] != stops[i].VesselID {
					t.Errorf("feature %d vessel_id = %v", i, props["vessel_id"])
				}
				if int64(props["timestamp"].(float64)) != stops[i].Timestamp {
					t.Errorf("feature %d timestamp = %v", i, props["timestamp"])
				}
			}
		})
	}
}

func TestExport_EmptyDocumentText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.geojson")
	if err := Export(nil, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"features": []`) {
		t.Errorf("expected indented empty features array, got:\n%s", data)
	}
}

func TestExport_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "stops.geojson")

	if err := Export(sampleStops(2), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output not created: %v", err)
	}
}

func TestExport_ReplacesExistingAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stops.geojson")
	if err := os.WriteFile(path, []byte("old content"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Export(sampleStops(3), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc := readDocument(t, path)
	if len(doc["features"].([]any)) != 3 {
		t.Error("existing file was not replaced")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != FileMode {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), FileMode)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the output file, found %v", names)
	}
}

func TestExport_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced the same way on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	path := filepath.Join(dir, "stops.geojson")
	err := Export(sampleStops(1), path)
	if err == nil {
		t.Fatal("expected permission error")
	}

	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("expected *OutputError, got %T", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected fs.ErrPermission in chain, got %v", err)
	}
	if !strings.Contains(outErr.Hint, "writable") {
		t.Errorf("Hint = %q, want remediation advice", outErr.Hint)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("no output file should exist after a failed write")
	}
}

func TestExport_DestinationIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taken")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := Export(sampleStops(1), path)
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("expected *OutputError, got %v", err)
	}
	if outErr.Op != "rename" {
		t.Errorf("Op = %q, want rename", outErr.Op)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
}

func TestExport_EmptyPath(t *testing.T) {
	if err := Export(nil, ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
}

func TestExporter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "stops.geojson")
	if err := NewExporter(path).Export(ctx, sampleStops(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Error("canceled export must not create the output file")
	}
}

func TestHintFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"permission", &fs.PathError{Op: "open", Path: "/out/x", Err: fs.ErrPermission}, "writable by the current user"},
		{"disk full", &fs.PathError{Op: "write", Path: "/out/x", Err: syscall.ENOSPC}, "disk space"},
		{"read-only", &fs.PathError{Op: "open", Path: "/out/x", Err: syscall.EROFS}, "read-only"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hintFor("/out/x", tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hint = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hint = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestOutputError_Message(t *testing.T) {
	err := newOutputError("/out/stops.geojson", "create", &fs.PathError{Op: "open", Path: "/out", Err: fs.ErrPermission})

	msg := err.Error()
	for _, want := range []string{"/out/stops.geojson", "create", "writable"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
