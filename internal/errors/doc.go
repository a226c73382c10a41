// Package errors provides error handling conventions for the pk3strip CLI.
//
// This package defines an ExitError type for CLI exit code handling, exit
// code constants following standard Unix conventions, and thin re-exports
// of the wrapping helpers from cockroachdb/errors so command code only
// imports a single errors package.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := errors.NewUserError(err, "Run 'pk3strip init' first")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
//
// Sentinel errors for archive operations live in the internal/pk3 package
// next to the operations that return them.
package errors
