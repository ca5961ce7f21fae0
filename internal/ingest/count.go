// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/vesseltracker/internal/progress"
)

const countBufferSize = 256 * 1024

// CountRecords returns the number of lines in the input. The first successful
// count is cached; the stream itself never needs it. This is a separate read
// pass over the file, so callers that do not report progress should skip it.
func (p *Processor) CountRecords(ctx context.Context) (int64, error) {
	p.countMu.Lock()
	defer p.countMu.Unlock()

	if p.counted {
		return p.count, nil
	}

	rc, err := p.open()
	if err != nil {
		return 0, &InputError{Path: p.path, Err: err}
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			p.logger.Warn().Err(closeErr).Msg("Error closing input after count")
		}
	}()

	p.reporter.Start(progress.StageCounting, 0)
	defer p.reporter.Finish(progress.StageCounting)

	n, err := countLines(ctx, rc, func(lines int64) {
		p.reporter.Advance(progress.StageCounting, lines)
	})
	if err != nil {
		return 0, fmt.Errorf("count records in %s: %w", p.path, err)
	}

	p.counted = true
	p.count = n

	p.mu.Lock()
	p.stats.TotalRecords = n
	p.mu.Unlock()

	return n, nil
}

// knownCount returns the cached line count, or 0 if CountRecords has not run.
func (p *Processor) knownCount() int64 {
	p.countMu.Lock()
	defer p.countMu.Unlock()
	return p.count
}

// countLines counts newline-terminated lines plus a final unterminated line.
func countLines(ctx context.Context, r io.Reader, advance func(int64)) (int64, error) {
	buf := make([]byte, countBufferSize)
	var total int64
	var last byte = '\n'

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			lines := int64(bytes.Count(buf[:n], []byte{'\n'}))
			total += lines
			last = buf[n-1]
			if lines > 0 {
				advance(lines)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if last != '\n' {
		total++
		advance(1)
	}
	return total, nil
}
