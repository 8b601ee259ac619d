// Package errs provides standardized error types for the delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: an entity with the given id does not exist
//   - ValueIsRequiredError: a required value is missing or empty
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value lies outside its allowed bounds
//   - PreconditionFailedError: the request is well formed but the current state forbids it
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// The HTTP adapter maps the sentinels to status codes: ErrObjectNotFound to 404,
// the validation sentinels and ErrPreconditionFailed to 400.
package errs
