// Package errs provides the typed error taxonomy shared by the parcel core.
//
// Every category has a sentinel, a struct type carrying details, constructors
// with and without a cause, and an Unwrap method returning the sentinel so
// callers classify failures with errors.Is:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - conflict: ObjectAlreadyExistsError (duplicate identifiers, one-to-one records)
//   - not found: ObjectNotFoundError
//   - state: StateIsInvalidError (operation not allowed in the current state)
//
// The transport layer maps categories to responses; the core never formats
// user-facing messages itself.
package errs
