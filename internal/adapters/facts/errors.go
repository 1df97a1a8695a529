package facts

import "errors"

// Sentinel kinds for fact repository errors.
var (
	ErrNotFound    = errors.New("competition not found")
	ErrUnavailable = errors.New("fact source unavailable")
)
