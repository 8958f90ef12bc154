// Package logging provides logging utilities for schemacheck.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Diagnostics
//
// Diagnostics are slog records on stderr. Warnings are always shown; with
// --verbose, Info reports run progress and Debug every pipeline step:
//
//	logging.Debug("compiling schema", "path", path, "draft", draft)
//	logging.Info("schema checked", "schema", name, "passed", ok)
//	logging.Warn("failed to record run history", "file", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("No schemas found under %s", root)
//	logging.UserSuccess("All validations passed")
//	logging.UserWarning("history_file is not configured")
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning: stderr
//
// Setup routes both streams together with the diagnostics; the command
// tests rely on that to capture everything.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
package logging
