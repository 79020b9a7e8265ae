// Package logging wires pslog loggers through command contexts.
package logging

import (
	"context"
	"io"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// New returns a console logger writing to w. Verbose lowers the minimum
// level to debug.
func New(w io.Writer, verbose, noColor bool) pslog.Logger {
	level := pslog.InfoLevel
	if verbose {
		level = pslog.DebugLevel
	}
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeConsole,
		NoColor:  noColor,
		MinLevel: level,
	})
}

// WithLogger returns a copy of ctx carrying log.
func WithLogger(ctx context.Context, log pslog.Logger) context.Context {
	return pslog.ContextWithLogger(ctx, log)
}

// WithNames annotates the logger with the size of the name lists used
// for a parse. A nil emoji list is reported as unrestricted.
func WithNames(log pslog.Logger, mentions, emoji []string) pslog.Logger {
	log = log.With("mentions", len(mentions))
	if emoji == nil {
		return log.With("emoji", "unrestricted")
	}
	return log.With("emoji", len(emoji))
}
