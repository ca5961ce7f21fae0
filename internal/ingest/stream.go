// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ingest

import (
	"context"
	"errors"
	"iter"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vesseltracker/internal/models"
)

// PositionStream is a lazy, single-pass sequence of positions. It is not safe
// for concurrent use; one goroutine should drive Next.
//
//	for stream.Next() {
//	    pos := stream.Position()
//	}
//	err := stream.Err()
type PositionStream struct {
	proc    *Processor
	results <-chan chunkResult
	cancel  context.CancelFunc
	logger  zerolog.Logger

	current []models.Position
	idx     int
	pos     models.Position
	errs    []error
	done    bool
}

// Next advances to the next position, blocking until a chunk completes if
// needed. It returns false once every chunk has been consumed or the stream
// has been closed.
func (s *PositionStream) Next() bool {
	if s.done {
		return false
	}

	for {
		if s.idx < len(s.current) {
			s.pos = s.current[s.idx]
			s.idx++
			return true
		}

		res, ok := <-s.results
		if !ok {
			s.finish()
			return false
		}
		s.handle(res)
	}
}

// Position returns the position produced by the last successful call to Next.
func (s *PositionStream) Position() models.Position {
	return s.pos
}

// Err returns the chunk failures and read errors seen so far, joined. Worker
// failures are *WorkerError values; a read failure is an *InputError.
func (s *PositionStream) Err() error {
	return errors.Join(s.errs...)
}

// Close stops the pipeline and waits for its goroutines to exit. Positions not
// yet consumed are discarded. Close is safe to call more than once.
func (s *PositionStream) Close() error {
	if s.done {
		return nil
	}
	s.cancel()
	for range s.results { //nolint:revive // drain until the reader closes the channel
	}
	s.finish()
	return nil
}

// All adapts the stream to a range-over-func iterator. Breaking out of the
// loop closes the stream.
func (s *PositionStream) All() iter.Seq[models.Position] {
	return func(yield func(models.Position) bool) {
		for s.Next() {
			if !yield(s.pos) {
				_ = s.Close()
				return
			}
		}
	}
}

func (s *PositionStream) handle(res chunkResult) {
	s.proc.record(res)

	if res.err != nil {
		s.errs = append(s.errs, res.err)
		if res.seq < 0 {
			s.logger.Error().Err(res.err).Msg("Input read failed")
		} else {
			s.logger.Error().Err(res.err).Int("chunk", res.seq).Msg("Chunk failed")
		}
	}

	s.current = res.positions
	s.idx = 0
}

func (s *PositionStream) finish() {
	s.done = true
	s.current = nil
	s.idx = 0
	s.cancel()
	s.proc.finish()
}
