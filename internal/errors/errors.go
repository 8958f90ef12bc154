package errors

import (
	"errors"
	"fmt"
)

// Exit codes for schemacheck
const (
	ExitSuccess      = 0
	ExitChecksFailed = 1
	ExitGeneralError = 1
	ExitConfigError  = 2
	ExitRootError    = 3
)

// Sentinel causes, matchable with Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parse error")
	ErrSchemaCompile     = errors.New("schema compile error")
)

// HarnessError is the base error type for schemacheck
type HarnessError struct {
	Code    int
	Message string
	Cause   error
}

func (e *HarnessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HarnessError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *HarnessError) ExitCode() int {
	return e.Code
}

// New creates a new HarnessError
func New(code int, message string) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HarnessError
func Wrap(code int, message string, cause error) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// UnsupportedFormat returns an error for a data file with an unrecognized extension
func UnsupportedFormat(path, ext string) *HarnessError {
	return Wrap(ExitGeneralError, fmt.Sprintf("%s: extension %q", path, ext), ErrUnsupportedFormat)
}

// ParseError returns an error for malformed JSON or YAML text
func ParseError(path string, cause error) *HarnessError {
	return Wrap(ExitGeneralError, path, fmt.Errorf("%w: %w", ErrParse, cause))
}

// SchemaCompileError returns an error for a schema rejected by the strict compiler
func SchemaCompileError(location string, cause error) *HarnessError {
	return Wrap(ExitChecksFailed, location, fmt.Errorf("%w: %w", ErrSchemaCompile, cause))
}

// ChecksFailed returns the error reported when a run finished with failures
func ChecksFailed(failures int) *HarnessError {
	return New(ExitChecksFailed, fmt.Sprintf("validation failed: %d failure(s)", failures))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *HarnessError {
	return Wrap(ExitConfigError, message, cause)
}

// RootError returns an error for I/O failures on the schema or examples roots
func RootError(op string, cause error) *HarnessError {
	return Wrap(ExitRootError, fmt.Sprintf("%s failed", op), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *HarnessError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var harnessErr *HarnessError
	if errors.As(err, &harnessErr) {
		return harnessErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
