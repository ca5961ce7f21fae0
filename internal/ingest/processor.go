// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/vesseltracker/internal/ais"
	"github.com/tomtom215/vesseltracker/internal/logging"
	"github.com/tomtom215/vesseltracker/internal/metrics"
	"github.com/tomtom215/vesseltracker/internal/models"
	"github.com/tomtom215/vesseltracker/internal/progress"
)

const (
	// DefaultChunkSize is the number of lines per unit of work.
	DefaultChunkSize = 100000

	// MaxLineSize is the longest input line that is parsed. Longer lines are
	// skipped and counted as rejected.
	MaxLineSize = 16 * 1024 * 1024

	readBufferSize = 64 * 1024

	gzipSuffix = ".gz"
)

// Option configures a Processor.
type Option func(*Processor)

// WithChunkSize sets the number of lines per chunk.
func WithChunkSize(n int) Option {
	return func(p *Processor) {
		p.chunkSize = n
	}
}

// WithWorkers sets the maximum number of chunks parsed concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = n
	}
}

// WithReporter sets the progress observer.
func WithReporter(r progress.Reporter) Option {
	return func(p *Processor) {
		p.reporter = progress.OrNop(r)
	}
}

// WithProfiler sets the profiling observer.
func WithProfiler(prof metrics.Profiler) Option {
	return func(p *Processor) {
		p.profiler = metrics.OrNop(prof)
	}
}

// Processor reads one input file and produces its position stream.
type Processor struct {
	path        string
	chunkSize   int
	workers     int
	maxLineSize int
	reporter  progress.Reporter
	profiler  metrics.Profiler
	logger    zerolog.Logger

	// parse is the per-line parser; replaced in tests.
	parse func([]byte) (models.Position, bool)

	consumed atomic.Bool

	countMu sync.Mutex
	counted bool
	count   int64

	mu    sync.RWMutex
	stats IngestStats
}

// NewProcessor creates a processor for the file at path. It fails with an
// *InputError wrapping ErrInputNotFound if the path does not exist or is a directory.
func NewProcessor(path string, opts ...Option) (*Processor, error) {
	p := &Processor{
		path:        path,
		chunkSize:   DefaultChunkSize,
		workers:     runtime.NumCPU(),
		maxLineSize: MaxLineSize,
		reporter:    progress.Nop{},
		profiler:    metrics.Nop{},
		logger:      logging.WithComponent("ingest"),
		parse:       ais.ParseLine,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, p.chunkSize)
	}
	if p.workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, p.workers)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Path: path, Err: ErrInputNotFound}
		}
		return nil, &InputError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &InputError{Path: path, Err: fmt.Errorf("%w: path is a directory", ErrInputNotFound)}
	}

	return p, nil
}

// Path returns the input path.
func (p *Processor) Path() string {
	return p.path
}

// Compressed reports whether the input is read through a gzip decoder.
func (p *Processor) Compressed() bool {
	return strings.HasSuffix(p.path, gzipSuffix)
}

// Stats returns a copy of the current ingestion statistics.
func (p *Processor) Stats() IngestStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// open returns a reader over the decompressed input.
func (p *Processor) open() (io.ReadCloser, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrInputNotFound
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	if !p.Compressed() {
		return f, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	return &gzipReadCloser{Reader: gz, file: f}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	fileErr := g.file.Close()
	return errors.Join(gzErr, fileErr)
}

// Positions starts the pipeline and returns the position stream. It may be
// called once per Processor; later calls return ErrAlreadyConsumed.
func (p *Processor) Positions(ctx context.Context) (*PositionStream, error) {
	if !p.consumed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyConsumed
	}

	rc, err := p.open()
	if err != nil {
		return nil, &InputError{Path: p.path, Err: err}
	}

	total := p.knownCount()

	p.mu.Lock()
	p.stats.TotalRecords = total
	p.stats.StartTime = time.Now()
	p.mu.Unlock()

	logging.Ctx(ctx).Info().
		Str("path", p.path).
		Bool("compressed", p.Compressed()).
		Int("chunk_size", p.chunkSize).
		Int("workers", p.workers).
		Msg("Starting ingestion")

	p.reporter.Start(progress.StageProcessing, total)

	runCtx, cancel := context.WithCancel(ctx)
	results := make(chan chunkResult, p.workers)

	go p.run(runCtx, rc, results)

	return &PositionStream{
		proc:    p,
		results: results,
		cancel:  cancel,
		logger:  p.logger.With().Str("path", p.path).Logger(),
	}, nil
}

// run reads the input, submits chunks to the worker pool and closes results
// once every worker has finished.
func (p *Processor) run(ctx context.Context, rc io.ReadCloser, results chan<- chunkResult) {
	defer close(results)
	defer func() {
		if err := rc.Close(); err != nil {
			p.logger.Warn().Err(err).Msg("Error closing input")
		}
	}()

	var g errgroup.Group
	g.SetLimit(p.workers)

	br := bufio.NewReaderSize(rc, readBufferSize)

	seq := 0
	chunk := make([][]byte, 0, p.chunkSize)
	submit := func(n int, lines [][]byte) {
		g.Go(func() error {
			res := p.processChunk(n, lines)
			select {
			case results <- res:
			case <-ctx.Done():
			}
			return nil
		})
	}

	var readErr error
	for ctx.Err() == nil {
		line, err := readLine(br, p.maxLineSize)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		chunk = append(chunk, line)
		if len(chunk) == p.chunkSize {
			submit(seq, chunk)
			seq++
			chunk = make([][]byte, 0, p.chunkSize)
		}
	}
	if len(chunk) > 0 && ctx.Err() == nil {
		submit(seq, chunk)
	}

	_ = g.Wait()

	if readErr != nil && ctx.Err() == nil {
		select {
		case results <- chunkResult{seq: -1, err: &InputError{Path: p.path, Err: fmt.Errorf("read: %w", readErr)}}:
		case <-ctx.Done():
		}
	}
}

// readLine returns the next line without its line terminator. A line longer
// than limit is consumed up to its newline and returned as nil, which the
// chunk worker counts as rejected. io.EOF is returned only once no bytes remain.
func readLine(br *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	oversized := false
	read := false

	for {
		frag, err := br.ReadSlice('\n')
		read = read || len(frag) > 0

		if !oversized {
			n := len(frag)
			if n > 0 && frag[n-1] == '\n' {
				n--
			}
			if len(line)+n > limit {
				oversized = true
				line = nil
			} else {
				line = append(line, frag...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return nil, io.EOF
			}
		case err != nil:
			return nil, err
		}

		if oversized {
			return nil, nil
		}
		return trimLineEnd(line), nil
	}
}

// trimLineEnd strips a trailing "\n" or "\r\n" and never returns nil.
func trimLineEnd(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if line == nil {
		return []byte{}
	}
	return line
}

// processChunk parses every line of one chunk in order. A panic is recovered
// into a *WorkerError so the remaining chunks are unaffected.
func (p *Processor) processChunk(seq int, lines [][]byte) (res chunkResult) {
	defer func() {
		if r := recover(); r != nil {
			res = chunkResult{
				seq:   seq,
				lines: len(lines),
				err:   &WorkerError{Chunk: seq, Err: fmt.Errorf("panic: %v", r)},
			}
		}
	}()

	positions := make([]models.Position, 0, len(lines))
	rejected := 0
	for _, line := range lines {
		// nil marks a line that exceeded the size limit.
		if line == nil {
			rejected++
			continue
		}
		pos, ok := p.parse(line)
		if !ok {
			rejected++
			continue
		}
		positions = append(positions, pos)
	}

	return chunkResult{
		seq:       seq,
		positions: positions,
		lines:     len(lines),
		rejected:  rejected,
	}
}

// record folds one chunk result into the processor statistics and observers.
func (p *Processor) record(res chunkResult) {
	var worker *WorkerError
	failed := errors.As(res.err, &worker)

	p.mu.Lock()
	if res.seq >= 0 {
		p.stats.Chunks++
	}
	p.stats.LinesRead += int64(res.lines)
	p.stats.Positions += int64(len(res.positions))
	p.stats.Rejected += int64(res.rejected)
	if failed {
		p.stats.WorkerFailures++
	}
	p.mu.Unlock()

	if res.seq >= 0 {
		p.profiler.RecordChunk(res.lines, len(res.positions), res.rejected, failed)
		p.reporter.Advance(progress.StageProcessing, int64(res.lines))

		if logging.IsLevelEnabled(zerolog.DebugLevel) {
			p.logger.Debug().
				Int("chunk", res.seq).
				Int("lines", res.lines).
				Int("positions", len(res.positions)).
				Int("rejected", res.rejected).
				Msg("Chunk processed")
		}
	}
}

func (p *Processor) finish() {
	p.mu.Lock()
	if p.stats.EndTime.IsZero() {
		p.stats.EndTime = time.Now()
	}
	stats := p.stats
	p.mu.Unlock()

	p.reporter.Finish(progress.StageProcessing)

	p.logger.Info().
		Int64("lines", stats.LinesRead).
		Int64("positions", stats.Positions).
		Int64("rejected", stats.Rejected).
		Int64("chunks", stats.Chunks).
		Int64("worker_failures", stats.WorkerFailures).
		Dur("duration", stats.Duration()).
		Msg("Ingestion completed")
}
