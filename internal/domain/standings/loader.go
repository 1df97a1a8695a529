package standings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	"github.com/blocboard/blocboard/internal/domain/model"
	"github.com/blocboard/blocboard/pkg/metrics"
)

// DivisionFacts bundles one division's fact snapshot with its derived
// tallies for the duration of a single report computation.
type DivisionFacts struct {
	Division     model.Division
	Problems     []model.Problem
	Ascents      []model.Ascent
	Participants []model.Participant
	Tallies      []model.UserTally
}

// Loader pulls and joins facts for a competition into per-user per-division
// tallies.
type Loader struct {
	repo facts.Repository
}

// NewLoader creates a loader over the given fact repository.
func NewLoader(repo facts.Repository) *Loader {
	return &Loader{repo: repo}
}

// Load returns a DivisionFacts bundle for every qualifying division, in
// deterministic division order (sort key nulls-last, then name ascending).
// A non-empty divisionID restricts the result to that one division; a
// filter that matches no division of the competition yields an empty slice.
// Divisions are fetched concurrently; the first fetch failure aborts the
// whole load.
func (l *Loader) Load(ctx context.Context, competitionID, divisionID string) ([]DivisionFacts, error) {
	divisions, err := l.fetchDivisions(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	sortDivisions(divisions)

	if divisionID != "" {
		filtered := divisions[:0]
		for _, d := range divisions {
			if d.ID == divisionID {
				filtered = append(filtered, d)
			}
		}
		divisions = filtered
	}

	out := make([]DivisionFacts, len(divisions))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(divisions))
	for i := range divisions {
		wg.Add(1)
		go func(i int, div model.Division) {
			defer wg.Done()
			df, err := l.loadDivision(ctx, competitionID, div)
			if err != nil {
				errCh <- err
				cancel()
				return
			}
			out[i] = df
		}(i, divisions[i])
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	return out, nil
}

// loadDivision fetches one division's problems, their ascents and its
// registrations, then derives the tallies.
func (l *Loader) loadDivision(ctx context.Context, competitionID string, div model.Division) (DivisionFacts, error) {
	problems, err := l.fetchProblems(ctx, competitionID, div.ID)
	if err != nil {
		return DivisionFacts{}, err
	}

	problemIDs := make([]string, len(problems))
	for i, p := range problems {
		problemIDs[i] = p.ID
	}

	ascents, err := l.fetchAscents(ctx, problemIDs)
	if err != nil {
		return DivisionFacts{}, err
	}

	participants, err := l.fetchParticipants(ctx, competitionID, div.ID)
	if err != nil {
		return DivisionFacts{}, err
	}

	return DivisionFacts{
		Division:     div,
		Problems:     problems,
		Ascents:      ascents,
		Participants: participants,
		Tallies:      tally(ascents),
	}, nil
}

// tally sums ascents into per-user aggregates. Nil attempt counts sum as
// zero; a false topped/zone flag contributes nothing regardless of
// attempts.
func tally(ascents []model.Ascent) []model.UserTally {
	byUser := make(map[string]*model.UserTally)
	order := make([]string, 0, len(ascents))
	for _, a := range ascents {
		t, ok := byUser[a.UserID]
		if !ok {
			t = &model.UserTally{UserID: a.UserID, DisplayName: a.DisplayName}
			byUser[a.UserID] = t
			order = append(order, a.UserID)
		}
		if a.Topped {
			t.Tops++
		}
		if a.Zone {
			t.Zones++
		}
		t.TopAttempts += model.AttemptCount(a.TopAttempts)
		t.ZoneAttempts += model.AttemptCount(a.ZoneAttempts)
	}

	out := make([]model.UserTally, 0, len(byUser))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	return out
}

// sortDivisions orders by explicit sort key (nulls last), then name
// ascending, so report order is deterministic across backends and fetch
// completion order.
func sortDivisions(divisions []model.Division) {
	sort.SliceStable(divisions, func(i, j int) bool {
		a, b := divisions[i], divisions[j]
		switch {
		case a.SortOrder != nil && b.SortOrder != nil:
			if *a.SortOrder != *b.SortOrder {
				return *a.SortOrder < *b.SortOrder
			}
		case a.SortOrder != nil:
			return true
		case b.SortOrder != nil:
			return false
		}
		return a.Name < b.Name
	})
}

func (l *Loader) fetchDivisions(ctx context.Context, competitionID string) ([]model.Division, error) {
	start := time.Now()
	divisions, err := l.repo.GetDivisions(ctx, competitionID)
	l.observe("divisions", start, err)
	return divisions, err
}

func (l *Loader) fetchProblems(ctx context.Context, competitionID, divisionID string) ([]model.Problem, error) {
	start := time.Now()
	problems, err := l.repo.GetProblems(ctx, competitionID, divisionID)
	l.observe("problems", start, err)
	return problems, err
}

func (l *Loader) fetchAscents(ctx context.Context, problemIDs []string) ([]model.Ascent, error) {
	start := time.Now()
	ascents, err := l.repo.GetAscents(ctx, problemIDs)
	l.observe("ascents", start, err)
	return ascents, err
}

func (l *Loader) fetchParticipants(ctx context.Context, competitionID, divisionID string) ([]model.Participant, error) {
	start := time.Now()
	participants, err := l.repo.GetParticipants(ctx, competitionID, divisionID)
	l.observe("participants", start, err)
	return participants, err
}

func (l *Loader) observe(query string, start time.Time, err error) {
	backend := l.repo.Backend()
	metrics.RecordFactFetchLatency(query, backend, float64(time.Since(start).Nanoseconds())/1e6)
	if err != nil {
		metrics.RecordFactFetchError(query, backend)
	}
}
