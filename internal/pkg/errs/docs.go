// Package errs provides standardized error types for the marketplace service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised by constructors, commands and repositories
//   - Lifecycle errors (TransitionDeniedError, NotOwnerError, NotArchivedError,
//     AlreadyArchivedError, DuplicateCreationError, ConcurrentModificationError)
//     raised when an actor asks for a state change the order graph does not allow
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired, ErrIllegalFromState)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works across layers
//
// All lifecycle errors are recoverable: callers classify them with errors.Is and
// decide whether to retry, report or ignore them.
package errs
