// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package main is the entry point for the vesseltracker command.
//
// vesseltracker reads a newline-delimited JSON file of AIS messages (optionally
// gzip-compressed), detects where each vessel stayed below 1 knot for at least
// the minimum duration, and writes those stops as a GeoJSON FeatureCollection.
//
// # Usage
//
//	vesseltracker [flags] input_file output_file
//
// Relative paths are resolved against the working directory. Input files
// ending in .gz are decompressed on the fly.
//
// # Flags
//
//	-min-duration      minimum stop duration in seconds (default 3600)
//	-chunk-size        lines per ingestion chunk (default 100000)
//	-workers           ingestion workers, 0 = one per CPU
//	-analysis-workers  stop detection workers, 0 = one per CPU
//	-log-level         trace, debug, info, warn, error
//	-log-format        json or console
//	-progress          log progress while running (default true)
//	-profile           log per-section timing and memory deltas
//	-metrics-textfile  write Prometheus metrics to this file after the run
//
// # Configuration
//
// Flags override environment variables, which override the optional config
// file, which overrides built-in defaults. See internal/config.
//
// # Exit Codes
//
//	0  success, the output file was written
//	1  the input could not be read, the output could not be written,
//	   or the configuration is invalid
//	2  usage error
//
// # Example
//
//	vesseltracker -min-duration 1800 ais-2024-01-01.ndjson.gz stops.geojson
//	Processing complete. Found 1289 stops.
package main
