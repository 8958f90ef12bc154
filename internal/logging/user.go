package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output functions with status prefixes.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. Nil writers restore the defaults.
func SetUserOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	userOut = stdout
	userErr = stderr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, "⚠ "+format+"\n", args...)
}
