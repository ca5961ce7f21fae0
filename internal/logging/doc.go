// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package logging provides centralized zerolog-based structured logging for Vessel Tracker.
//
// Logs go to stderr. Stdout is reserved for the final run summary so that
// the tool can be used in shell pipelines.
//
// # Quick Start
//
//	import "github.com/tomtom215/vesseltracker/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("input", path).Msg("Processing started")
//	logging.Err(err).Msg("Export failed")
//
//	// Per-run correlation ID
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("Ingestion started")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: console)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Component Loggers
//
// Long-lived pipeline stages keep a component logger:
//
//	logger := logging.WithComponent("ingest")
//	logger.Warn().Int("chunk", seq).Err(err).Msg("Chunk failed")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
package logging
