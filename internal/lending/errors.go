package lending

import "errors"

// Domain failures are request-scoped and recoverable; handlers classify
// every error from the core into exactly one of these.
var (
	// ErrNotFound means the referenced book copy or user does not exist.
	ErrNotFound = errors.New("book copy not found")

	// ErrForbidden means the actor lacks the role the transition requires
	// (not the owner, not the borrower, or not authenticated).
	ErrForbidden = errors.New("actor not allowed")

	// ErrConflict means the requested transition is invalid from the copy's
	// current status.
	ErrConflict = errors.New("transition not allowed in current status")

	// ErrQuotaExceeded means the actor already holds the maximum number of
	// concurrent borrows.
	ErrQuotaExceeded = errors.New("borrow limit reached")

	// ErrUnavailable marks transient persistence failures. Clients may retry
	// lending operations only after re-fetching current status.
	ErrUnavailable = errors.New("storage temporarily unavailable")
)
