// Package log provides the gated diagnostic logger used for pipeline
// progress and distribution reporting.
package log

import (
	"fmt"
	"io"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr). An optional
// prefix is prepended to every line.
type Logger struct {
	Enabled bool
	Prefix  string
	W       io.Writer
}

// New returns a logger writing to w when enabled.
func New(w io.Writer, enabled bool) *Logger {
	return &Logger{Enabled: enabled, W: w}
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, l.Prefix+format+"\n", args...)
}
