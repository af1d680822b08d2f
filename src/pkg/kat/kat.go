// Package kat provides the public API of the kat transfer engine for
// programs that want cat-style concatenation without the command line.
package kat

import (
	"context"
	"io"

	"github.com/howmanysmall/kat/src/internal/core"
)

// Engine and related types are re-exported for public API access.
type (
	Engine = core.Engine
	// EngineOption re-exports core.EngineOption.
	EngineOption = core.EngineOption
	// FastTransfer re-exports core.FastTransfer for custom zero-copy backends.
	FastTransfer = core.FastTransfer
	// Source re-exports core.Source.
	Source = core.Source
	// Stats re-exports core.Stats.
	Stats = core.Stats
	// TransferError re-exports core.TransferError.
	TransferError = core.TransferError
)

// SlowChunkSize is the buffer size of the user-space copy loop.
const SlowChunkSize = core.SlowChunkSize

// Re-exported sentinel errors.
var (
	ErrNotImplemented  = core.ErrNotImplemented
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrShortWrite      = core.ErrShortWrite
	ErrRunFailed       = core.ErrRunFailed
)

// NewEngine creates a transfer engine; see core.NewEngine.
func NewEngine(opts ...EngineOption) *Engine {
	return core.NewEngine(opts...)
}

// WithFastTransfer replaces the platform zero-copy backend; nil disables it.
func WithFastTransfer(ft FastTransfer) EngineOption {
	return core.WithFastTransfer(ft)
}

// WithChunkSize sets the slow copier buffer size.
func WithChunkSize(size int) EngineOption {
	return core.WithChunkSize(size)
}

// Cat writes the named files to dst in order, reading this process's
// standard input for "-". With no paths it copies standard input, as the
// command does with no arguments. Failed files are skipped and listed in
// the returned error, which wraps ErrRunFailed.
func Cat(ctx context.Context, dst io.Writer, paths ...string) error {
	runner := core.NewRunner(core.NewEngine(), core.RunnerConfig{Stdout: dst})

	return runner.Run(ctx, paths)
}
