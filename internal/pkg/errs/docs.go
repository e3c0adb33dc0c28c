// Package errs provides standardized error types shared across the printflow
// application.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the failure details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() so errors.Is works against the
//     sentinel
//
// Domain-specific failures (permission denials, state-machine violations) live
// next to the code that raises them; this package covers only the generic
// validation and lookup failures every layer shares.
package errs
