// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package geojson

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vesseltracker/internal/logging"
	"github.com/tomtom215/vesseltracker/internal/models"
	"github.com/tomtom215/vesseltracker/internal/progress"
)

// FileMode is the permission of the written document.
const FileMode os.FileMode = 0o644

// FeatureFromStop converts one stop into a Point feature.
func FeatureFromStop(stop models.Stop) models.Feature {
	return models.Feature{
		Type: models.GeoJSONFeature,
		Geometry: models.Geometry{
			Type:        models.GeoJSONPoint,
			Coordinates: [2]float64{stop.Longitude, stop.Latitude},
		},
		Properties: models.StopProperties{
			VesselID:  stop.VesselID,
			Timestamp: stop.Timestamp,
			Datetime:  stop.Time().Format(time.RFC3339),
		},
	}
}

// Build converts stops into a FeatureCollection, preserving their order.
func Build(stops []models.Stop) models.FeatureCollection {
	features := make([]models.Feature, 0, len(stops))
	for _, stop := range stops {
		features = append(features, FeatureFromStop(stop))
	}
	return models.FeatureCollection{
		Type:     models.GeoJSONFeatureCollection,
		Features: features,
	}
}

// Export writes stops to outputPath as a GeoJSON document.
func Export(stops []models.Stop, outputPath string) error {
	return NewExporter(outputPath).Export(context.Background(), stops)
}

// Exporter writes stop documents to a fixed path.
type Exporter struct {
	path     string
	reporter progress.Reporter
	logger   zerolog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithReporter sets the progress observer.
func WithReporter(r progress.Reporter) ExporterOption {
	return func(e *Exporter) {
		e.reporter = progress.OrNop(r)
	}
}

// NewExporter creates an exporter for outputPath.
func NewExporter(outputPath string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		path:     outputPath,
		reporter: progress.Nop{},
		logger:   logging.WithComponent("geojson"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path returns the destination path.
func (e *Exporter) Path() string {
	return e.path
}

// Export builds the document and writes it atomically.
func (e *Exporter) Export(ctx context.Context, stops []models.Stop) error {
	if e.path == "" {
		return &OutputError{Path: e.path, Op: "validate", Err: ErrEmptyPath}
	}

	e.reporter.Start(progress.StageExporting, int64(len(stops)))
	features := make([]models.Feature, 0, len(stops))
	for _, stop := range stops {
		features = append(features, FeatureFromStop(stop))
		e.reporter.Advance(progress.StageExporting, 1)
	}
	e.reporter.Finish(progress.StageExporting)

	doc := models.FeatureCollection{
		Type:     models.GeoJSONFeatureCollection,
		Features: features,
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export canceled: %w", err)
	}

	logging.Ctx(ctx).Info().Str("path", e.path).Int("features", len(features)).Msg("Writing output")

	if err := writeAtomic(e.path, doc); err != nil {
		e.logger.Error().Err(err).Str("path", e.path).Msg("Failed to write output")
		return err
	}
	return nil
}

// writeAtomic encodes v as indented JSON into a temporary file next to path and
// renames it into place.
func writeAtomic(path string, v any) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newOutputError(path, "mkdir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newOutputError(path, "create", err)
	}
	tmpName := tmp.Name()

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return newOutputError(path, "encode", err)
	}
	if err := w.Flush(); err != nil {
		return newOutputError(path, "write", err)
	}
	if err := tmp.Sync(); err != nil {
		return newOutputError(path, "sync", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return newOutputError(path, "close", err)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		return newOutputError(path, "chmod", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return newOutputError(path, "rename", err)
	}
	return nil
}
