// Package errs provides standardized error types for the depot application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: single field failures
//   - ValidationError: every failed constraint of a candidate record
//   - ObjectNotFoundError: a referenced business key does not exist
//   - ConflictError: create of an existing key, or update of a missing one
//   - InvariantViolatedError: a cross-field rule failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// CodeOf maps any error onto the short rejection codes (ERR001..ERR004) returned
// to callers.
package errs
