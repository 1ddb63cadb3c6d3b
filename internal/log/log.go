// Package log provides context-aware diagnostic logging for valise.
// Diagnostics go to stderr; primary data output goes through the output
// package so stdout stays clean for piping.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger writes diagnostic output with verbose and quiet gating.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. Quiet wins over verbose.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a discard logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output. Suppressed by quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output. Suppressed by quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Command logs an external toolchain invocation and returns a func to
// call when the command finishes, which logs the elapsed time.
// Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	if dir != "" {
		fmt.Fprintf(l.out, "[%s] $ %s %s", dir, name, strings.Join(args, " "))
	} else {
		fmt.Fprintf(l.out, "$ %s %s", name, strings.Join(args, " "))
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, " (%s)\n", d.Round(time.Millisecond))
	}
}

// Debug writes a message with key=value pairs. Only complete pairs are
// printed. Only prints when verbose mode is enabled.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, sb.String())
}

// IsVerbose returns true if verbose output is enabled and quiet is not.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
