// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package geojson

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
)

// ErrEmptyPath indicates an empty output path.
var ErrEmptyPath = errors.New("output path is empty")

// OutputError is a fatal failure while writing the output document.
type OutputError struct {
	// Path is the destination the document was being written to.
	Path string

	// Op is the step that failed (mkdir, create, encode, sync, close, chmod, rename).
	Op string

	// Err is the underlying error.
	Err error

	// Hint is an actionable remediation message, if one applies.
	Hint string
}

func (e *OutputError) Error() string {
	msg := fmt.Sprintf("write %s: %s: %v", e.Path, e.Op, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// newOutputError wraps err and attaches a hint for well-known causes.
func newOutputError(path, op string, err error) *OutputError {
	return &OutputError{
		Path: path,
		Op:   op,
		Err:  err,
		Hint: hintFor(path, err),
	}
}

func hintFor(path string, err error) string {
	dir := filepath.Dir(path)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("check that %s is writable by the current user or choose a different output path", dir)
	case errors.Is(err, syscall.ENOSPC):
		return fmt.Sprintf("free up disk space on the filesystem holding %s", dir)
	case errors.Is(err, syscall.EROFS):
		return fmt.Sprintf("%s is on a read-only filesystem; choose a different output path", dir)
	default:
		return ""
	}
}
