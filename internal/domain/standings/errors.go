package standings

import "errors"

// Sentinel kinds for standings errors.
var (
	ErrCompetitionNotFound = errors.New("competition not found")
)
