// Package display provides terminal output helpers for dirscout
// commands: outcome glyphs, byte-size formatting, and TTY-aware color.
//
// All helpers accept io.Writer so command output stays testable.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	failureMark = color.New(color.FgRed).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
)

// IsTerminal reports whether w is a TTY that can render color.
// Only os.Stdout and os.Stderr are ever considered terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisableColor turns all color output off, for --no-color and
// non-terminal writers.
func DisableColor() {
	color.NoColor = true
}

// Size renders a byte count in human-readable form ("1.5 MB").
func Size(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(bytes))
}

// Outcome writes one batch-item result line: a green check or red
// cross, the source path, and the failure reason if any.
func Outcome(w io.Writer, source string, err error) {
	if err == nil {
		fmt.Fprintf(w, "  %s %s\n", successMark("✓"), source)
		return
	}
	fmt.Fprintf(w, "  %s %s: %v\n", failureMark("✗"), source, err)
}

// BatchSummary writes the closing line of a batch operation.
func BatchSummary(w io.Writer, verb string, succeeded, failed int) {
	if failed == 0 {
		fmt.Fprintf(w, "%s %d file(s)\n", verb, succeeded)
		return
	}
	fmt.Fprintf(w, "%s %d file(s), %s\n", verb, succeeded,
		failureMark(fmt.Sprintf("%d failed", failed)))
}

// Note writes a dimmed informational line.
func Note(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, dimText(fmt.Sprintf(format, args...)))
}
