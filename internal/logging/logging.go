package logging

import (
	"io"
	"log/slog"
	"os"
)

// logger carries diagnostics only. Reports go to the command's stdout and
// never pass through it.
var logger = newLogger(os.Stderr, false, false)

// Setup routes diagnostics and user status lines for one invocation.
// Diagnostics go to stderr: warnings always, run progress (Info) and
// pipeline steps (Debug) only when verbose. Status lines go to stdout,
// warnings among them to stderr. Nil writers mean the process streams.
func Setup(verbose, jsonOutput bool, stdout, stderr io.Writer) {
	if stderr == nil {
		stderr = os.Stderr
	}
	logger = newLogger(stderr, verbose, jsonOutput)
	SetUserOutput(stdout, stderr)
}

func newLogger(w io.Writer, verbose, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	// text output carries no timestamps
	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Debug logs one pipeline step.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs run progress: start, each finished schema, the totals.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a problem that does not change the run's outcome.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// With returns a logger carrying attrs on every record, e.g. the schema path.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
