// Package errors provides typed errors with exit codes for schemacheck.
//
// # Error Types
//
// HarnessError is the base error type that wraps an error with an exit code:
//
//	type HarnessError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess      = 0  // Every schema compiled and every fixture matched
//	ExitChecksFailed = 1  // At least one compile failure or fixture failure
//	ExitGeneralError = 1  // General/unknown errors
//	ExitConfigError  = 2  // Configuration error
//	ExitRootError    = 3  // Schema or examples root could not be read
//
// # Error Constructors
//
//	errors.UnsupportedFormat(path, ".txt")
//	errors.ParseError(path, err)
//	errors.SchemaCompileError(location, err)
//	errors.ChecksFailed(3)
//
// The data-level constructors wrap sentinels so callers can classify them:
//
//	if errors.Is(err, errors.ErrUnsupportedFormat) { ... }
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
