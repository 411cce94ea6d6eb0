// Package logging wires the solver's debug tracing onto zerolog.
//
// The resolver core was written against a slog-shaped "message plus
// key/value pairs" call convention; rather than rewrite every trace call
// site across the solver, Logger keeps that calling convention and backs it
// with zerolog so the rest of the program gets structured, leveled output
// consistent with the CLI's logging setup.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to the message+kv calling convention used
// by the resolver (through SolverOptions) and the xsolve CLI.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	z := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{z: z}
}

// NewConsole builds a Logger with human-readable console output, matching
// the CLI's default presentation.
func NewConsole(level string) *Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Debug logs msg with the given alternating key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.event(l.z.Debug(), kv).Msg(msg)
}

// Info logs msg at info level with alternating key/value pairs.
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.event(l.z.Info(), kv).Msg(msg)
}

// Warn logs msg at warn level with alternating key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.event(l.z.Warn(), kv).Msg(msg)
}

// Error logs msg at error level with alternating key/value pairs.
func (l *Logger) Error(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.event(l.z.Error(), kv).Msg(msg)
}

func (l *Logger) event(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
