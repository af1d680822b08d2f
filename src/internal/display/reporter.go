// Package display renders kat's diagnostics on the error stream.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter writes one-line diagnostics and the usage message.
type Reporter struct {
	out          io.Writer
	colorEnabled bool
}

// NewReporter creates a reporter writing to out. Colour is applied only when
// colorEnabled is set, so captured output stays byte-exact.
func NewReporter(out io.Writer, colorEnabled bool) *Reporter {
	return &Reporter{
		out:          out,
		colorEnabled: colorEnabled,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Diagnostic prints "<program>: <path>: <message>".
func (r *Reporter) Diagnostic(program, path, message string) {
	r.println(fmt.Sprintf("%s: %s: %s", r.formatProgram(program, color.FgRed), path, message))
}

// Usage prints the command synopsis.
func (r *Reporter) Usage(program string) {
	r.println(fmt.Sprintf("Usage: %s [-u] [file...]", r.formatProgram(program, color.FgYellow)))
}

func (r *Reporter) formatProgram(program string, colorAttr color.Attribute) string {
	if !r.colorEnabled {
		return program
	}

	c := color.New(colorAttr, color.Bold)
	c.EnableColor()

	return c.Sprint(program)
}

func (r *Reporter) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
