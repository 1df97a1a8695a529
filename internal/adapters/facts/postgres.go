package facts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blocboard/blocboard/internal/domain/model"
)

// PostgresStore is a fact repository backed by the competition system's
// postgres database. The schema is owned by the surrounding CRUD services;
// this store only reads.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds connection configuration for the postgres backend.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
}

// NewPostgresStore connects a pgx pool and verifies connectivity.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %w", ErrUnavailable, err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: create pool: %w", ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Backend names the store implementation for metrics labels.
func (s *PostgresStore) Backend() string { return "postgres" }

// Close shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// GetCompetition returns the competition or ErrNotFound.
func (s *PostgresStore) GetCompetition(ctx context.Context, competitionID string) (model.Competition, error) {
	var c model.Competition
	err := s.pool.QueryRow(ctx,
		`SELECT id, title FROM competitions WHERE id = $1`, competitionID,
	).Scan(&c.ID, &c.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Competition{}, ErrNotFound
	}
	if err != nil {
		return model.Competition{}, fmt.Errorf("%w: get competition: %w", ErrUnavailable, err)
	}
	return c, nil
}

// GetDivisions returns the competition's divisions.
func (s *PostgresStore) GetDivisions(ctx context.Context, competitionID string) ([]model.Division, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, competition_id, name, sort_order
		   FROM divisions
		  WHERE competition_id = $1`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("%w: get divisions: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Division
	for rows.Next() {
		var d model.Division
		if err := rows.Scan(&d.ID, &d.CompetitionID, &d.Name, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("%w: scan division: %w", ErrUnavailable, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate divisions: %w", ErrUnavailable, err)
	}
	return out, nil
}

// GetProblems returns problems for the competition, optionally restricted
// to one division.
func (s *PostgresStore) GetProblems(ctx context.Context, competitionID, divisionID string) ([]model.Problem, error) {
	query := `SELECT id, competition_id, division_id, name FROM problems WHERE competition_id = $1`
	args := []any{competitionID}
	if divisionID != "" {
		query += ` AND division_id = $2`
		args = append(args, divisionID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: get problems: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Problem
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.CompetitionID, &p.DivisionID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: scan problem: %w", ErrUnavailable, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate problems: %w", ErrUnavailable, err)
	}
	return out, nil
}

// GetAscents returns all ascents logged on the given problems, with user
// display names joined in.
func (s *PostgresStore) GetAscents(ctx context.Context, problemIDs []string) ([]model.Ascent, error) {
	if len(problemIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT a.problem_id, a.user_id, u.display_name,
		        a.topped, a.top_attempts, a.zone, a.zone_attempts
		   FROM ascents a
		   JOIN users u ON u.id = a.user_id
		  WHERE a.problem_id = ANY($1)`, problemIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: get ascents: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Ascent
	for rows.Next() {
		var a model.Ascent
		if err := rows.Scan(&a.ProblemID, &a.UserID, &a.DisplayName,
			&a.Topped, &a.TopAttempts, &a.Zone, &a.ZoneAttempts); err != nil {
			return nil, fmt.Errorf("%w: scan ascent: %w", ErrUnavailable, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate ascents: %w", ErrUnavailable, err)
	}
	return out, nil
}

// GetParticipants returns registrations for the competition, optionally
// restricted to one division, with user display names joined in.
func (s *PostgresStore) GetParticipants(ctx context.Context, competitionID, divisionID string) ([]model.Participant, error) {
	query := `SELECT p.competition_id, p.user_id, u.display_name, p.division_id, p.joined_at
	            FROM participants p
	            JOIN users u ON u.id = p.user_id
	           WHERE p.competition_id = $1`
	args := []any{competitionID}
	if divisionID != "" {
		query += ` AND p.division_id = $2`
		args = append(args, divisionID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: get participants: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.CompetitionID, &p.UserID, &p.DisplayName, &p.DivisionID, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("%w: scan participant: %w", ErrUnavailable, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate participants: %w", ErrUnavailable, err)
	}
	return out, nil
}
