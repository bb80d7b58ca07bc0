// Package cliutil provides output helpers for the apinorm commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteList writes a header line followed by one indented "- " line per
// item. Nothing is written when items is empty.
func WriteList[T fmt.Stringer](w io.Writer, header string, items []T) {
	if len(items) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", header, len(items))
	for _, item := range items {
		Writef(w, "  - %s\n", item.String())
	}
}

// Count formats n with the singular or plural noun.
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
