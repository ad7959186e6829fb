package models

import "errors"

// Sentinel errors for the failure taxonomy. Callers classify failures
// with errors.Is and map them to transport codes at the boundary.
var (
	// ErrValidation: malformed or missing required input, rejected before
	// any write.
	ErrValidation = errors.New("validation error")

	// ErrConflict: uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("conflict")

	// ErrAuth: credential mismatch or unknown principal. The message never
	// discloses which of the two it was.
	ErrAuth = errors.New("invalid credentials")

	// ErrGeneration: the external model call failed or its output violated
	// the expected contract.
	ErrGeneration = errors.New("generation error")

	// ErrNotFound: a referenced record does not exist, where that is
	// surfaced rather than tolerated.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the account's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
)
