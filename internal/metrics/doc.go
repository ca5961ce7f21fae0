// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

/*
Package metrics provides run profiling and Prometheus instrumentation.

Profiling is an injectable observer rather than process-wide state. The
pipeline stages call a Profiler; Nop is used when none is configured, and
PrometheusProfiler records everything on a private registry that can be dumped
to a node_exporter textfile at the end of a run.

# Sections

A run is split into three profiled sections:

  - message_processing: ingestion, parsing and aggregation
  - vessel_analysis: per-vessel stop detection
  - geojson_export: document build and atomic write

For each section the profiler records wall-clock duration and the change in
resident set size (RSS, sampled through gopsutil) between start and end.

# Available Metrics

Section Metrics:
  - vesseltracker_section_duration_seconds: Section wall time (histogram)
    Labels: section
  - vesseltracker_section_memory_delta_bytes: RSS change over the section (gauge)
    Labels: section

Ingestion Metrics:
  - vesseltracker_chunks_total: Chunks processed (counter)
    Labels: status (ok, failed)
  - vesseltracker_lines_total: Input lines read by chunk workers (counter)
  - vesseltracker_positions_total: Valid positions produced (counter)
  - vesseltracker_records_rejected_total: Lines rejected by the parser (counter)

Analysis Metrics:
  - vesseltracker_vessels_analyzed_total: Vessels analyzed (counter)
    Labels: status (ok, failed)
  - vesseltracker_stops_detected_total: Stop events detected (counter)

# Usage Example

	profiler := metrics.NewPrometheusProfiler()

	end := profiler.Section(metrics.SectionMessageProcessing)
	// ... ingest ...
	end()

	profiler.LogSummary()
	if err := profiler.WriteTextfile("/var/lib/node_exporter/vesseltracker.prom"); err != nil {
	    logging.Warn().Err(err).Msg("Failed to write metrics textfile")
	}

# Thread Safety

All Profiler implementations in this package are safe for concurrent use.
*/
package metrics
