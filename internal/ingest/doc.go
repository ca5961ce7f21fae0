// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package ingest turns a line-delimited AIS file into a stream of validated positions.
//
// The input is read by a single goroutine, split into chunks of ChunkSize lines
// and fanned out to a bounded pool of chunk workers. Each worker runs the AIS
// parser over its lines in order and hands back the valid positions. The
// consumer pulls positions one at a time from a PositionStream.
//
// # Architecture
//
//	input file (.ndjson or .ndjson.gz)
//	       ↓
//	reader goroutine (bufio.Reader, chunking)
//	       ↓
//	errgroup worker pool (SetLimit = workers)
//	       ↓
//	results channel (completion order)
//	       ↓
//	PositionStream.Next / All
//
// # Ordering
//
// Chunks complete in any order, so the stream does NOT preserve input order
// across chunk boundaries. Positions from one chunk are yielded contiguously
// and in input order.
//
// # Failure Semantics
//
//   - Missing input: NewProcessor returns an *InputError wrapping ErrInputNotFound.
//   - Unreadable input or corrupt gzip header: Positions returns an *InputError.
//   - Malformed lines: silently skipped, counted in IngestStats.Rejected.
//   - Lines longer than MaxLineSize: discarded up to the next newline and
//     counted in IngestStats.Rejected like any other malformed line.
//   - Worker panic: recovered into a *WorkerError, logged and reported by
//     PositionStream.Err; other chunks are unaffected.
//   - Read failure mid-file: reported by PositionStream.Err as an *InputError
//     after every completed chunk has been yielded.
//
// # Single Pass
//
// A Processor produces exactly one stream. Calling Positions a second time returns
// ErrAlreadyConsumed rather than reading the file again.
//
// # Example Usage
//
//	proc, err := ingest.NewProcessor("positions.ndjson.gz",
//	    ingest.WithChunkSize(100000),
//	    ingest.WithWorkers(runtime.NumCPU()),
//	)
//	if err != nil {
//	    return err // FatalInput
//	}
//
//	stream, err := proc.Positions(ctx)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for pos := range stream.All() {
//	    aggregator.Add(pos)
//	}
//	if err := stream.Err(); err != nil {
//	    logging.Warn().Err(err).Msg("Some chunks failed")
//	}
package ingest
