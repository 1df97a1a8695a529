package facts

import (
	"context"
	"sync"

	"github.com/blocboard/blocboard/internal/domain/model"
)

// MemStore is an in-memory fact repository. It is the default backend for
// development and the double used by engine tests. Writes exist only to let
// the surrounding system (or tests) install fact snapshots; the engine
// itself never calls them.
type MemStore struct {
	mu           sync.RWMutex
	competitions map[string]model.Competition
	divisions    map[string][]model.Division    // keyed by competition id
	problems     map[string][]model.Problem     // keyed by competition id
	ascents      map[string][]model.Ascent      // keyed by problem id
	participants map[string][]model.Participant // keyed by competition id
}

// NewMemStore creates an empty in-memory fact repository.
func NewMemStore() *MemStore {
	return &MemStore{
		competitions: make(map[string]model.Competition),
		divisions:    make(map[string][]model.Division),
		problems:     make(map[string][]model.Problem),
		ascents:      make(map[string][]model.Ascent),
		participants: make(map[string][]model.Participant),
	}
}

// Backend names the store implementation for metrics labels.
func (s *MemStore) Backend() string { return "memory" }

// Close releases any held resources.
func (s *MemStore) Close() error { return nil }

// PutCompetition installs or replaces a competition.
func (s *MemStore) PutCompetition(c model.Competition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[c.ID] = c
}

// PutDivision installs or replaces a division.
func (s *MemStore) PutDivision(d model.Division) {
	s.mu.Lock()
	defer s.mu.Unlock()
	divs := s.divisions[d.CompetitionID]
	for i := range divs {
		if divs[i].ID == d.ID {
			divs[i] = d
			return
		}
	}
	s.divisions[d.CompetitionID] = append(divs, d)
}

// PutProblem installs or replaces a problem.
func (s *MemStore) PutProblem(p model.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	probs := s.problems[p.CompetitionID]
	for i := range probs {
		if probs[i].ID == p.ID {
			probs[i] = p
			return
		}
	}
	s.problems[p.CompetitionID] = append(probs, p)
}

// PutAscent upserts an ascent. One row per (problem, user); re-logging
// replaces the previous record entirely.
func (s *MemStore) PutAscent(a model.Ascent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.ascents[a.ProblemID]
	for i := range rows {
		if rows[i].UserID == a.UserID {
			rows[i] = a
			return
		}
	}
	s.ascents[a.ProblemID] = append(rows, a)
}

// PutParticipant upserts a registration. One row per (competition, user);
// joining again updates division and timestamp.
func (s *MemStore) PutParticipant(p model.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.participants[p.CompetitionID]
	for i := range rows {
		if rows[i].UserID == p.UserID {
			rows[i] = p
			return
		}
	}
	s.participants[p.CompetitionID] = append(rows, p)
}

// GetCompetition returns the competition or ErrNotFound.
func (s *MemStore) GetCompetition(ctx context.Context, competitionID string) (model.Competition, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return model.Competition{}, ErrNotFound
	}
	return c, nil
}

// GetDivisions returns the competition's divisions.
func (s *MemStore) GetDivisions(ctx context.Context, competitionID string) ([]model.Division, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	divs := s.divisions[competitionID]
	out := make([]model.Division, len(divs))
	copy(out, divs)
	return out, nil
}

// GetProblems returns problems for the competition, optionally restricted
// to one division.
func (s *MemStore) GetProblems(ctx context.Context, competitionID, divisionID string) ([]model.Problem, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Problem
	for _, p := range s.problems[competitionID] {
		if divisionID != "" && (p.DivisionID == nil || *p.DivisionID != divisionID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetAscents returns all ascents logged on the given problems.
func (s *MemStore) GetAscents(ctx context.Context, problemIDs []string) ([]model.Ascent, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Ascent
	for _, id := range problemIDs {
		out = append(out, s.ascents[id]...)
	}
	return out, nil
}

// GetParticipants returns registrations for the competition, optionally
// restricted to one division.
func (s *MemStore) GetParticipants(ctx context.Context, competitionID, divisionID string) ([]model.Participant, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Participant
	for _, p := range s.participants[competitionID] {
		if divisionID != "" && (p.DivisionID == nil || *p.DivisionID != divisionID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
