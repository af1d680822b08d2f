// Package config holds the runtime options for kat. Options come from the
// command line only; kat reads no configuration files or environment.
package config

import (
	"fmt"
)

const (
	// PageSize is the page size the copy buffer is measured in.
	PageSize = 4096

	// DefaultChunkSize is 32 pages, large enough to amortize system calls
	// while keeping the copy buffer a fixed, small footprint.
	DefaultChunkSize = 32 * PageSize
)

// Options controls a single kat invocation.
type Options struct {
	// Unbuffered is accepted for compatibility with -u and has no effect:
	// output is never buffered beyond a single chunk.
	Unbuffered bool
	FastPath   bool
	ChunkSize  int
}

// Default returns the options kat runs with when no flags are given.
func Default() *Options {
	return &Options{
		Unbuffered: false,
		FastPath:   true,
		ChunkSize:  DefaultChunkSize,
	}
}

// Validate fills unset fields with defaults and rejects impossible values.
func (o *Options) Validate() error {
	if o.ChunkSize < 0 {
		return fmt.Errorf("chunk size must be non-negative, got %d", o.ChunkSize)
	}

	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}

	return nil
}
