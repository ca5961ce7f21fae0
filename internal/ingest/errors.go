// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors for ingestion.
var (
	// ErrInputNotFound indicates the input path does not exist or is not a regular file.
	ErrInputNotFound = errors.New("input file not found")

	// ErrAlreadyConsumed indicates Positions was called on a processor whose
	// stream has already been started.
	ErrAlreadyConsumed = errors.New("position stream already consumed")

	// ErrInvalidChunkSize indicates a chunk size below 1.
	ErrInvalidChunkSize = errors.New("chunk size must be at least 1")

	// ErrInvalidWorkers indicates a worker count below 1.
	ErrInvalidWorkers = errors.New("worker count must be at least 1")
)

// InputError is a fatal problem with the input file. No output should be
// produced when it is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// WorkerError reports a chunk that failed unexpectedly. It is isolated to its
// chunk and never aborts the run.
type WorkerError struct {
	Chunk int
	Err   error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Chunk, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
