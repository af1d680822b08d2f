// Package core provides the byte-transfer engine behind kat: a kernel
// zero-copy fast path with a bounded-buffer user-space fallback, and the
// runner that feeds inputs through it in argument order.
package core

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/howmanysmall/kat/src/internal/config"
)

// SlowChunkSize is the buffer size of the user-space copy loop and the
// minimum length requested from the fast path.
const SlowChunkSize = config.DefaultChunkSize

// maxRequest caps a single fast-path request to what an int can carry.
const maxRequest = int64(^uint(0) >> 1)

// Source is a readable input that can report its size.
// *os.File satisfies it.
type Source interface {
	io.Reader
	Stat() (fs.FileInfo, error)
}

// FastTransfer is a zero-copy primitive moving up to n bytes from src to dst.
//
// Transfer returns the number of bytes moved; zero means the source is
// exhausted. The primitive owns the source cursor, so callers repeat the same
// request until it returns zero. Failures wrapping ErrNotImplemented or
// ErrInvalidArgument let the engine fall back to the slow copier.
type FastTransfer interface {
	Name() string
	Transfer(dst io.Writer, src Source, n int) (int, error)
}

// Stats counts what an Engine has done so far.
type Stats struct {
	Files                int64
	FastCalls            int64
	FastBytes            int64
	SlowBytes            int64
	InvalidFallbacks     int64
	UnsupportedFallbacks int64
}

// Engine copies one source at a time to a destination, preferring the fast path.
// It is not safe for concurrent use.
type Engine struct {
	fast        FastTransfer
	fastEnabled bool
	chunkSize   int
	buf         []byte
	stats       Stats
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFastTransfer replaces the platform backend. A nil backend disables the fast path.
func WithFastTransfer(ft FastTransfer) EngineOption {
	return func(e *Engine) {
		e.fast = ft
	}
}

// WithChunkSize sets the slow copier buffer size. Non-positive sizes are ignored.
func WithChunkSize(size int) EngineOption {
	return func(e *Engine) {
		if size > 0 {
			e.chunkSize = size
		}
	}
}

// EngineOptionsFrom turns validated CLI options into engine options.
func EngineOptionsFrom(opts *config.Options) []EngineOption {
	engineOpts := []EngineOption{WithChunkSize(opts.ChunkSize)}
	if !opts.FastPath {
		engineOpts = append(engineOpts, WithFastTransfer(nil))
	}

	return engineOpts
}

// NewEngine creates an engine using the backend for the build target unless
// an option overrides it.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		fast:      DefaultFastTransfer(),
		chunkSize: SlowChunkSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.fastEnabled = e.fast != nil
	e.buf = make([]byte, e.chunkSize)

	return e
}

// FastPathEnabled reports whether the engine will still try the fast path.
func (e *Engine) FastPathEnabled() bool {
	return e.fastEnabled
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Transfer copies src to dst. The output is identical to reading src to the
// end and writing everything, whichever strategy ends up moving the bytes.
func (e *Engine) Transfer(ctx context.Context, dst io.Writer, src Source) error {
	e.stats.Files++

	if !e.fastEnabled {
		return e.slowCopy(ctx, dst, src)
	}

	info, err := src.Stat()
	if err != nil {
		return newTransferError(CategoryStat, "stat", err)
	}

	// Empty files, pipes and ttys all report zero.
	if info.Size() <= 0 {
		return e.slowCopy(ctx, dst, src)
	}

	length := requestLength(info.Size(), e.chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return newTransferError(CategoryTransfer, e.fast.Name(), err)
		}

		n, err := e.fast.Transfer(dst, src, length)
		e.stats.FastCalls++

		if err != nil {
			switch {
			case errors.Is(err, ErrNotImplemented):
				e.fastEnabled = false
				e.stats.UnsupportedFallbacks++

				return e.slowCopy(ctx, dst, src)
			case errors.Is(err, ErrInvalidArgument):
				e.stats.InvalidFallbacks++

				return e.slowCopy(ctx, dst, src)
			default:
				return newTransferError(CategoryTransfer, e.fast.Name(), err)
			}
		}

		if n <= 0 {
			return nil
		}

		e.stats.FastBytes += int64(n)
	}
}

// requestLength oversizes the request so a file that grows after the stat
// call still drains in as few calls as possible.
func requestLength(size int64, chunkSize int) int {
	length := max(size, int64(chunkSize))

	return int(min(length, maxRequest))
}
