// Package cli provides the kat command line: flag parsing, usage errors, and
// wiring of the process streams into the transfer runner.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/howmanysmall/kat/src/internal/config"
	"github.com/howmanysmall/kat/src/internal/core"
	"github.com/howmanysmall/kat/src/internal/display"
	"github.com/spf13/cobra"
)

// Streams are the process handles a command runs against.
type Streams struct {
	ProgramName  string
	Stdin        core.Source
	Stdout       io.Writer
	Stderr       io.Writer
	ColorEnabled bool
	// EngineOptions are applied after the ones derived from flags.
	EngineOptions []core.EngineOption
}

// errHelpRequested is the usage error for -h and --help, which kat does not
// treat as options.
var errHelpRequested = errors.New("help is not an option")

// helpFlag records -h/--help. It reads back as false so cobra never
// short-circuits into its own help output.
type helpFlag struct {
	requested bool
}

func (h *helpFlag) String() string { return "false" }

func (h *helpFlag) Set(string) error {
	h.requested = true

	return nil
}

func (h *helpFlag) Type() string { return "bool" }

func usageError(err error) error {
	return &core.TransferError{
		Category:  core.CategoryUsage,
		Operation: "parse flags",
		Err:       err,
	}
}

// NewRootCommand builds the kat command bound to streams.
func NewRootCommand(streams Streams) *cobra.Command {
	opts := config.Default()
	reporter := display.NewReporter(streams.Stderr, streams.ColorEnabled)
	help := &helpFlag{}

	rootCmd := &cobra.Command{
		Use:   "kat [-u] [file...]",
		Short: "Concatenate files to standard output",
		Long: `kat writes each file to standard output in argument order.
With no file, or when file is -, it reads standard input.

Regular files are moved with the kernel's zero-copy transfer when the
platform provides one; everything else goes through a fixed-size buffer.

Examples:
  kat notes.txt               # Print a file
  kat header.txt - footer.txt # Wrap standard input
  kat -u part1 part2 > whole  # -u is accepted and ignored`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if help.requested {
				reporter.Usage(streams.ProgramName)

				return usageError(errHelpRequested)
			}

			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			engineOpts := append(core.EngineOptionsFrom(opts), streams.EngineOptions...)
			engine := core.NewEngine(engineOpts...)

			runner := core.NewRunner(engine, core.RunnerConfig{
				ProgramName: streams.ProgramName,
				Stdin:       streams.Stdin,
				Stdout:      streams.Stdout,
				Reporter:    reporter,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			return runner.Run(ctx, args)
		},
	}

	rootCmd.Flags().BoolVarP(&opts.Unbuffered, "unbuffered", "u", false, "accepted for compatibility; output is never buffered")
	helpOpt := rootCmd.Flags().VarPF(help, "help", "h", "rejected with a usage line")
	helpOpt.NoOptDefVal = "true"
	helpOpt.Hidden = true

	rootCmd.SetOut(streams.Stdout)
	rootCmd.SetErr(streams.Stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		reporter.Usage(streams.ProgramName)

		return usageError(err)
	})

	return rootCmd
}

// Execute runs kat against the real process streams.
func Execute() error {
	rootCmd := NewRootCommand(Streams{
		ProgramName:  os.Args[0],
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		ColorEnabled: display.IsTerminal(os.Stderr),
	})

	return rootCmd.Execute()
}
