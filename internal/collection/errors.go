// ABOUTME: Sentinel errors shared by the collection layer and its callers
// ABOUTME: The HTTP boundary maps these onto 400/403/404/409 responses

package collection

import "errors"

var (
	// ErrNotFound is returned for absent records and, deliberately, for
	// records belonging to another tenant on read paths.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned for mutations against another tenant's record.
	ErrForbidden = errors.New("record belongs to another organization")

	// ErrConflict is returned when a tenant-scoped uniqueness constraint
	// would be violated.
	ErrConflict = errors.New("duplicate record")

	// ErrInvalidTransition is returned for illegal or repeated status changes.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation is wrapped by per-type validators for missing or
	// malformed fields.
	ErrValidation = errors.New("validation failed")
)
