// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// The package includes error types for common failure scenarios:
//   - ObjectNotFoundError: an entity referenced by id does not exist
//   - ValueIsInvalidError: a supplied value failed validation
//   - ValueIsOutOfRangeError: a numeric value lies outside its allowed range
//   - ValueIsRequiredError: a required value is missing
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can match the sentinel
//
// Domain-specific sentinels (locked items, illegal status transitions) live in
// the domain packages themselves; this package only carries the generic kinds.
package errs
