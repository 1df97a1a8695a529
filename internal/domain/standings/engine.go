// Package standings turns raw ascent facts into ranked, tie-broken podiums
// and division summary statistics.
//
// The engine is a pure, stateless computation over an immutable fact
// snapshot fetched at the start of each report request. It performs no
// writes, holds no cross-request state, and derives every report fresh, so
// concurrent report requests need no locking.
package standings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	"github.com/blocboard/blocboard/internal/domain/types"
	"github.com/blocboard/blocboard/pkg/logger"
	"github.com/blocboard/blocboard/pkg/metrics"
)

// Engine assembles competition reports from the fact repository.
type Engine struct {
	repo              facts.Repository
	loader            *Loader
	defaultPodiumSize int
	log               logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithDefaultPodiumSize sets the podium cap used when the caller passes
// a non-positive size.
func WithDefaultPodiumSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultPodiumSize = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an Engine over the given fact repository.
func New(repo facts.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:              repo,
		loader:            NewLoader(repo),
		defaultPodiumSize: DefaultPodiumSize,
		log:               logger.Get().Named("standings"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeCompetitionReport builds the ordered report for a competition.
//
// divisionID optionally restricts the report to one division; a filter that
// does not resolve to a division of this competition yields a report with
// an empty division list, not an error. podiumSize <= 0 means the
// configured default. Returns ErrCompetitionNotFound when the competition
// does not exist; fact-source failures propagate unchanged and the whole
// report fails rather than returning a partial one.
func (e *Engine) ComputeCompetitionReport(ctx context.Context, competitionID, divisionID string, podiumSize int) (types.CompetitionReport, error) {
	start := time.Now()
	if podiumSize <= 0 {
		podiumSize = e.defaultPodiumSize
	}

	competition, err := e.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		metrics.RecordReportError()
		if errors.Is(err, facts.ErrNotFound) {
			return types.CompetitionReport{}, fmt.Errorf("%w: %s", ErrCompetitionNotFound, competitionID)
		}
		return types.CompetitionReport{}, fmt.Errorf("get competition: %w", err)
	}

	loaded, err := e.loader.Load(ctx, competitionID, divisionID)
	if err != nil {
		metrics.RecordReportError()
		return types.CompetitionReport{}, fmt.Errorf("load facts: %w", err)
	}

	report := types.CompetitionReport{
		Competition: types.CompetitionRef{ID: competition.ID, Title: competition.Title},
		Divisions:   make([]types.DivisionReport, 0, len(loaded)),
	}
	for _, df := range loaded {
		summary := Summarize(df)
		podium := Podium(df.Tallies, podiumSize)
		metrics.RecordPodiumSize(len(podium))
		report.Divisions = append(report.Divisions, types.DivisionReport{
			DivisionID:       df.Division.ID,
			DivisionName:     df.Division.Name,
			ParticipantCount: summary.ParticipantCount,
			ProblemCount:     summary.ProblemCount,
			TotalTops:        summary.TotalTops,
			TotalZones:       summary.TotalZones,
			Podium:           podium,
		})
	}

	metrics.RecordReportComputed()
	metrics.RecordReportDuration(float64(time.Since(start).Nanoseconds()) / 1e6)
	metrics.RecordDivisionsPerReport(len(report.Divisions))

	e.log.Debug(ctx, "computed competition report",
		logger.String("competitionID", competitionID),
		logger.Int("divisions", len(report.Divisions)),
		logger.Int("podiumSize", podiumSize),
	)
	return report, nil
}
