package domain

import "errors"

// Request-level validation failures surface to the caller as client
// errors; everything below them is absorbed per record.
var (
	// ErrMissingInput means a required route coordinate was absent.
	ErrMissingInput = errors.New("missing required coordinate")

	// ErrSourceUnavailable means the configured record source could not be
	// read at all. Callers fall back to an empty dataset rather than fail.
	ErrSourceUnavailable = errors.New("record source unavailable")
)
