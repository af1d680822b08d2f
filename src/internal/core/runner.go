package core

import (
	"context"
	"errors"
	"io"
	"os"
)

// StdinArg names standard input on the command line.
const StdinArg = "-"

// missingFileMessage is what kat prints for any input it cannot open.
const missingFileMessage = "No such file or directory"

// Reporter receives one diagnostic line per failed input.
type Reporter interface {
	Diagnostic(program, path, message string)
}

type discardReporter struct{}

func (discardReporter) Diagnostic(string, string, string) {}

// SourceFile is an input the runner opened itself and must close.
type SourceFile interface {
	Source
	io.Closer
}

// RunnerConfig wires a Runner to its process streams.
type RunnerConfig struct {
	ProgramName string
	Stdin       Source
	Stdout      io.Writer
	Reporter    Reporter
	MaxErrors   int
	// Open opens path arguments. Defaults to os.Open.
	Open func(path string) (SourceFile, error)
}

func openFile(path string) (SourceFile, error) {
	return os.Open(path)
}

// Runner concatenates inputs in argument order through a single Engine.
type Runner struct {
	engine       *Engine
	config       RunnerConfig
	errorHandler *ErrorHandler
}

// NewRunner creates a runner. Unset streams default to the process's own.
func NewRunner(engine *Engine, cfg RunnerConfig) *Runner {
	if engine == nil {
		engine = NewEngine()
	}

	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}

	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	if cfg.Reporter == nil {
		cfg.Reporter = discardReporter{}
	}

	if cfg.Open == nil {
		cfg.Open = openFile
	}

	if cfg.ProgramName == "" {
		cfg.ProgramName = "kat"
	}

	return &Runner{
		engine:       engine,
		config:       cfg,
		errorHandler: NewErrorHandler(cfg.MaxErrors),
	}
}

// Run copies every argument to stdout in order; no arguments means stdin.
// Failed inputs are reported and skipped, and the returned error wraps
// ErrRunFailed. An error whose category is fatal stops the run immediately.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{StdinArg}
	}

	for _, arg := range args {
		for _, err := range r.runOne(ctx, arg) {
			r.fail(arg, err)

			if ClassifyTransferError(err).Fatal() {
				return err
			}
		}
	}

	return r.errorHandler.Err()
}

// Errors returns the per-input failures collected so far.
func (r *Runner) Errors() *ErrorHandler {
	return r.errorHandler
}

// Engine returns the engine the runner transfers through.
func (r *Runner) Engine() *Engine {
	return r.engine
}

func (r *Runner) runOne(ctx context.Context, arg string) []error {
	if arg == StdinArg {
		if err := r.engine.Transfer(ctx, r.config.Stdout, r.config.Stdin); err != nil {
			return []error{err}
		}

		return nil
	}

	file, err := r.config.Open(arg)
	if err != nil {
		return []error{newTransferError(CategoryOpen, "open", err)}
	}

	var errs []error

	if err := r.engine.Transfer(ctx, r.config.Stdout, file); err != nil {
		errs = append(errs, err)
	}

	if err := file.Close(); err != nil {
		closeErr := newTransferError(CategoryClose, "close", err)
		closeErr.Path = arg
		errs = append(errs, closeErr)
	}

	return errs
}

func (r *Runner) fail(path string, err error) {
	message := err.Error()

	var te *TransferError
	if errors.As(err, &te) && te.Err != nil {
		message = te.Err.Error()
	}

	if ClassifyTransferError(err) == CategoryOpen {
		message = missingFileMessage
	}

	r.config.Reporter.Diagnostic(r.config.ProgramName, path, message)
	r.errorHandler.AddError(path, err)
}
