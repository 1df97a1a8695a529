// Package model contains domain models passed between layers.
package model

import "time"

// Competition is the top-level event a report is computed for.
type Competition struct {
	ID    string
	Title string
}

// Division is a competition sub-category problems, participants and
// standings are scoped to. Name is unique within a competition.
type Division struct {
	ID            string
	CompetitionID string
	Name          string
	SortOrder     *int // nil sorts after any set value
}

// Problem is a boulder set for a competition. DivisionID is nil for
// unassigned problems, which count toward no division.
type Problem struct {
	ID            string
	CompetitionID string
	DivisionID    *string
	Name          string
}

// Participant is a (competition, user) registration. At most one row per
// pair; re-joining updates DivisionID and JoinedAt.
type Participant struct {
	CompetitionID string
	UserID        string
	DisplayName   string
	DivisionID    *string
	JoinedAt      time.Time
}

// Ascent is a (problem, user) climb record. At most one row per pair;
// re-logging replaces the previous record entirely. Nil attempt counts mean
// the climber did not report them and sum as zero.
type Ascent struct {
	ProblemID    string
	UserID       string
	DisplayName  string
	Topped       bool
	TopAttempts  *int
	Zone         bool
	ZoneAttempts *int
}

// UserTally is the per (division, user) aggregate built from ascents on the
// division's problems.
type UserTally struct {
	UserID       string
	DisplayName  string
	Tops         int
	Zones        int
	TopAttempts  int
	ZoneAttempts int
}

// AttemptCount dereferences a nullable attempt counter for summing.
func AttemptCount(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
