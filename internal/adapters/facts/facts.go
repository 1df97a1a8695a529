// Package facts defines the read-only fact repository interface and errors.
//
// The standings engine consumes already-validated facts through this
// interface and never mutates them. Write paths (competition and problem
// CRUD, registration, ascent logging) live in the surrounding system.
package facts

import (
	"context"

	"github.com/blocboard/blocboard/internal/domain/model"
)

// Repository provides read access to competition facts.
//
// GetProblems and GetParticipants accept an optional division filter; the
// empty string means no filter. Implementations must join user display
// names into participant and ascent rows.
type Repository interface {
	// GetCompetition returns the competition or ErrNotFound.
	GetCompetition(ctx context.Context, competitionID string) (model.Competition, error)

	// GetDivisions returns the competition's divisions.
	GetDivisions(ctx context.Context, competitionID string) ([]model.Division, error)

	// GetProblems returns problems for the competition, optionally
	// restricted to one division.
	GetProblems(ctx context.Context, competitionID, divisionID string) ([]model.Problem, error)

	// GetAscents returns all ascents logged on the given problems.
	GetAscents(ctx context.Context, problemIDs []string) ([]model.Ascent, error)

	// GetParticipants returns registrations for the competition, optionally
	// restricted to one division.
	GetParticipants(ctx context.Context, competitionID, divisionID string) ([]model.Participant, error)

	// Backend names the store implementation for metrics labels.
	Backend() string

	// Close releases any held resources.
	Close() error
}
