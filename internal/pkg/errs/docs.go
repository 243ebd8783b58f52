// Package errs provides standardized error types for the courier application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Domain-specific sentinels (invalid status transition, rejected marketplace
// call, and so on) live next to the code that produces them; this package only
// carries the generic validation and lookup failures shared by every layer.
package errs
