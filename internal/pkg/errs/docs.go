// Package errs provides standardized error types for the catering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the order engine:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input,
//     raised before any state is touched
//   - ObjectNotFoundError: a referenced entity is absent
//   - AuthorizationError: the actor lacks permission for the requested action
//   - ConflictError: the entity's current state forbids the operation
//     (stock exhausted, illegal status transition, unmet precondition)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict) for errors.Is classification
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ConflictError additionally carries a machine-readable Details map (current
// status, allowed next statuses, stock numbers) which the HTTP layer serializes
// into the error body to support client retry logic.
package errs
