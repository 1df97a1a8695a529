package facts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/blocboard/blocboard/internal/domain/model"
)

// SQLiteStore is a fact repository backed by a sqlite database file. It
// suits single-node deployments and the seed tool.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", ErrUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %w", ErrUnavailable, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the embedded schema. Statements are idempotent.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("%w: apply schema: %w", ErrUnavailable, err)
	}
	return nil
}

// DB exposes the underlying handle for the seed tool.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Backend names the store implementation for metrics labels.
func (s *SQLiteStore) Backend() string { return "sqlite" }

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// GetCompetition returns the competition or ErrNotFound.
func (s *SQLiteStore) GetCompetition(ctx context.Context, competitionID string) (model.Competition, error) {
	var c model.Competition
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title FROM competitions WHERE id = ?`, competitionID,
	).Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Competition{}, ErrNotFound
	}
	if err != nil {
		return model.Competition{}, fmt.Errorf("%w: get competition: %w", ErrUnavailable, err)
	}
	return c, nil
}

// GetDivisions returns the competition's divisions.
func (s *SQLiteStore) GetDivisions(ctx context.Context, competitionID string) ([]model.Division, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, competition_id, name, sort_order
		   FROM divisions
		  WHERE competition_id = ?`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("%w: get divisions: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Division
	for rows.Next() {
		var d model.Division
		var sortOrder sql.NullInt64
		if err := rows.Scan(&d.ID, &d.CompetitionID, &d.Name, &sortOrder); err != nil {
			return nil, fmt.Errorf("%w: scan division: %w", ErrUnavailable, err)
		}
		if sortOrder.Valid {
			v := int(sortOrder.Int64)
			d.SortOrder = &v
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
func (s *SQLiteStore) GetProblems(ctx context.Context, competitionID, divisionID string) ([]model.Problem, error) {
	query := `SELECT id, competition_id, division_id, name FROM problems WHERE competition_id = ?`
	args := []any{competitionID}
	if divisionID != "" {
		query += ` AND division_id = ?`
		args = append(args, divisionID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: get problems: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Problem
	for rows.Next() {
		var p model.Problem
		var division sql.NullString
		if err := rows.Scan(&p.ID, &p.CompetitionID, &division, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: scan problem: %w", ErrUnavailable, err)
		}
		if division.Valid {
			v := division.String
			p.DivisionID = &v
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
func (s *SQLiteStore) GetAscents(ctx context.Context, problemIDs []string) ([]model.Ascent, error) {
	if len(problemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(problemIDs)), ",")
	args := make([]any, len(problemIDs))
	for i, id := range problemIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.problem_id, a.user_id, u.display_name,
		        a.topped, a.top_attempts, a.zone, a.zone_attempts
		   FROM ascents a
		   JOIN users u ON u.id = a.user_id
		  WHERE a.problem_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: get ascents: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Ascent
	for rows.Next() {
		var a model.Ascent
		var topAttempts, zoneAttempts sql.NullInt64
		if err := rows.Scan(&a.ProblemID, &a.UserID, &a.DisplayName,
			&a.Topped, &topAttempts, &a.Zone, &zoneAttempts); err != nil {
			return nil, fmt.Errorf("%w: scan ascent: %w", ErrUnavailable, err)
		}
		if topAttempts.Valid {
			v := int(topAttempts.Int64)
			a.TopAttempts = &v
		}
		if zoneAttempts.Valid {
			v := int(zoneAttempts.Int64)
			a.ZoneAttempts = &v
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
func (s *SQLiteStore) GetParticipants(ctx context.Context, competitionID, divisionID string) ([]model.Participant, error) {
	query := `SELECT p.competition_id, p.user_id, u.display_name, p.division_id, p.joined_at
	            FROM participants p
	            JOIN users u ON u.id = p.user_id
	           WHERE p.competition_id = ?`
	args := []any{competitionID}
	if divisionID != "" {
		query += ` AND p.division_id = ?`
		args = append(args, divisionID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: get participants: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var p model.Participant
		var division sql.NullString
		if err := rows.Scan(&p.CompetitionID, &p.UserID, &p.DisplayName, &division, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("%w: scan participant: %w", ErrUnavailable, err)
		}
		if division.Valid {
			v := division.String
			p.DivisionID = &v
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate participants: %w", ErrUnavailable, err)
	}
	return out, nil
}
