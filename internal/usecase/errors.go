package usecase

import "errors"

// Sentinel errors returned by use cases. Handlers translate these to status
// codes; anything else is treated as a dependency failure and reported as a
// generic 500 after logging the full detail.
var (
	// ErrNotFound: a lookup, search or ranking yielded nothing where absence
	// is meaningful.
	ErrNotFound = errors.New("not found")

	// ErrTargetNotFound: an engagement toggle aimed at a post or user that
	// does not exist.
	ErrTargetNotFound = errors.New("target not found")
)
