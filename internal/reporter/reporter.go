// Package reporter implements the per-file diagnostic sink: a saturating
// error counter plus styled terminal output, in the same spirit as
// rom-tools/internal/cli's use of lipgloss for its own headers and
// labels.
package reporter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	fatalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Reporter accumulates per-file error counts and writes styled diagnostics
// to an output stream (normally os.Stderr). A single Reporter is scoped to
// one file; the driver creates a fresh one per file and reads Failed()
// afterward to decide whether that file failed.
type Reporter struct {
	out  io.Writer
	name string
	errs uint8 // saturates at 255
}

// New creates a Reporter that prefixes every message with name (typically
// the file path being processed, or "-" for stdio).
func New(out io.Writer, name string) *Reporter {
	return &Reporter{out: out, name: name}
}

// Warn emits a non-counted diagnostic. Warnings never fail a file.
func (r *Reporter) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s: %s\n", warnStyle.Render("warning:"), r.name, msg)
}

// Fatal emits a counted diagnostic and returns an error the caller should
// use to abort processing of the current file. It never aborts the
// process: the driver moves on to the next file.
func (r *Reporter) Fatal(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s: %s\n", fatalStyle.Render("error:"), r.name, msg)
	if r.errs < 255 {
		r.errs++
	}
	return fmt.Errorf("%s: %s", r.name, msg)
}

// Errors returns the saturating error count accumulated so far.
func (r *Reporter) Errors() uint8 {
	return r.errs
}

// Failed reports whether this file produced any error.
func (r *Reporter) Failed() bool {
	return r.errs > 0
}
