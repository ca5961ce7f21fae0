// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

/*
Package tracker wires the stop detection pipeline together.

A run reads one AIS message file and writes one GeoJSON document:

	input file ──> ingest.Processor ──> analysis.GroupByVessel
	                                           │
	output file <── geojson.Exporter <── analysis.Analyzer

Run owns the error policy for the whole pipeline:

  - A missing or unreadable input file is fatal and no output is written.
  - Rejected records are counted and otherwise ignored.
  - A failed ingestion chunk or vessel analysis is logged and skipped. If every
    unit fails, the run still writes a valid empty document.
  - A failed output write is fatal and leaves no partial file behind.

Each run gets its own correlation ID and the input path, attached to every
log line emitted through logging.Ctx. A logger the caller stored with
logging.ContextWithLogger is used as the base.

Example:

	res, err := tracker.Run(ctx, tracker.Options{
	    InputPath:   "ais.ndjson.gz",
	    OutputPath:  "stops.geojson",
	    MinDuration: analysis.DefaultMinDuration,
	})
	if err != nil {
	    return err
	}
	fmt.Printf("Processing complete. Found %d stops.\n", res.Stops)
*/
package tracker
