package errs

import "errors"

var (
	// ErrTicketNotFound — no ticket row matches the requested id.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrRateLimited — an upstream provider answered 429; the handler
	// forwards the status instead of converting it to a 500.
	ErrRateLimited = errors.New("upstream rate limit")

	// ErrNoInsightJSON — none of the known model response shapes yielded a
	// parseable JSON object.
	ErrNoInsightJSON = errors.New("could not extract JSON from model response")

	// ErrNotConfigured — the route's provider credential is missing from the
	// environment. Only the affected route fails; the rest of the API works.
	ErrNotConfigured = errors.New("provider not configured")
)
