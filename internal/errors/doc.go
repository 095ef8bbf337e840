// Package errors provides error handling conventions for the basm CLI.
//
// This package re-exports wrapping helpers from cockroachdb/errors,
// defines sentinel errors for common failure conditions, and provides an
// ExitError type that carries a process exit code to the CLI boundary.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, basmerrors.ErrNotFound) {
//	    // report "no matching entry" without failing the process
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, rejected sudoers content)
//   - ExitSystem (2): System-related error (I/O, permissions)
//
// [ErrNotFound] is deliberately not fatal: removing an entry that does
// not exist is surfaced as a message and the process still exits 0.
package errors
