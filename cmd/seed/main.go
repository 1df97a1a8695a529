// Command seed populates a sqlite fact database with a demo competition
// so the report endpoint has something to serve out of the box.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/blocboard/blocboard/internal/adapters/facts"
)

const defaultTimeout = 30 * time.Second

// demoUser is one seeded climber plus their registration division.
type demoUser struct {
	id         string
	name       string
	division   string // division name, "" for ascent-only walk-ins
	registered bool
}

func main() {
	var (
		dbPath = flag.String("db", "blocboard.db", "Path to the sqlite database file")
		title  = flag.String("title", "City Bloc Open 2026", "Title of the seeded competition")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, *dbPath, *title); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath, title string) error {
	store, err := facts.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	db := store.DB()

	compID := uuid.NewString()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO competitions (id, title) VALUES (?, ?)`, compID, title); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}

	divisions := map[string]string{}
	for i, name := range []string{"Open", "Masters", "Youth"} {
		id := uuid.NewString()
		divisions[name] = id
		if _, err := db.ExecContext(ctx,
			`INSERT INTO divisions (id, competition_id, name, sort_order) VALUES (?, ?, ?, ?)`,
			id, compID, name, i+1); err != nil {
			return fmt.Errorf("insert division %s: %w", name, err)
		}
	}

	// Four problems per division, plus one left unassigned. The unassigned
	// problem never contributes to any division's report.
	problems := map[string][]string{}
	for name, divID := range divisions {
		for i := 1; i <= 4; i++ {
			id := uuid.NewString()
			problems[name] = append(problems[name], id)
			if _, err := db.ExecContext(ctx,
				`INSERT INTO problems (id, competition_id, division_id, name) VALUES (?, ?, ?, ?)`,
				id, compID, divID, fmt.Sprintf("%s #%d", name, i)); err != nil {
				return fmt.Errorf("insert problem: %w", err)
			}
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO problems (id, competition_id, division_id, name) VALUES (?, ?, NULL, ?)`,
		uuid.NewString(), compID, "Warmup slab"); err != nil {
		return fmt.Errorf("insert unassigned problem: %w", err)
	}

	users := []demoUser{
		{id: uuid.NewString(), name: "Alice", division: "Open", registered: true},
		{id: uuid.NewString(), name: "Bruno", division: "Open", registered: true},
		{id: uuid.NewString(), name: "Carmen", division: "Open", registered: true},
		{id: uuid.NewString(), name: "Dmitri", division: "Masters", registered: true},
		{id: uuid.NewString(), name: "Elif", division: "Masters", registered: true},
		{id: uuid.NewString(), name: "Farid", division: "Youth", registered: true},
		// Registered but never pulled onto the wall. Still counts as a
		// participant in the Masters report.
		{id: uuid.NewString(), name: "Greta", division: "Masters", registered: true},
		// Walk-in who logged ascents without registering.
		{id: uuid.NewString(), name: "Hana", division: "Open", registered: false},
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range users {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (id, display_name) VALUES (?, ?)`, u.id, u.name); err != nil {
			return fmt.Errorf("insert user %s: %w", u.name, err)
		}
		if !u.registered {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO participants (competition_id, user_id, division_id, joined_at) VALUES (?, ?, ?, ?)`,
			compID, u.id, divisions[u.division], now); err != nil {
			return fmt.Errorf("insert participant %s: %w", u.name, err)
		}
	}

	ascents, err := seedAscents(ctx, db, problems, users)
	if err != nil {
		return err
	}

	fmt.Printf("seeded competition %s (%q): %d divisions, %d users, %d ascents\n",
		compID, title, len(divisions), len(users), ascents)
	fmt.Printf("try: curl http://localhost:9080/competitions/%s/report\n", compID)
	return nil
}

// seedAscents logs a deterministic spread of results so podiums have real
// ties and attempt-count tiebreaks to resolve.
func seedAscents(ctx context.Context, db *sql.DB, problems map[string][]string, users []demoUser) (int, error) {
	type result struct {
		topped       bool
		topAttempts  *int
		zone         bool
		zoneAttempts *int
	}
	intp := func(v int) *int { return &v }

	// results[userName][problemIndex], indexed into that user's division wall.
	results := map[string][]result{
		"Alice": {
			{topped: true, topAttempts: intp(1), zone: true, zoneAttempts: intp(1)},
			{topped: true, topAttempts: intp(2), zone: true, zoneAttempts: intp(1)},
			{topped: false, zone: true, zoneAttempts: intp(3)},
		},
		"Bruno": {
			{topped: true, topAttempts: intp(2), zone: true, zoneAttempts: intp(1)},
			{topped: true, topAttempts: intp(2), zone: true, zoneAttempts: intp(2)},
			{topped: false, zone: true, zoneAttempts: intp(2)},
		},
		"Carmen": {
			{topped: true, topAttempts: intp(3), zone: true, zoneAttempts: intp(2)},
			{topped: false, topAttempts: nil, zone: true, zoneAttempts: nil},
		},
		"Hana": {
			{topped: true, topAttempts: intp(4), zone: true, zoneAttempts: intp(2)},
		},
		"Dmitri": {
			{topped: true, topAttempts: intp(1), zone: true, zoneAttempts: intp(1)},
			{topped: true, topAttempts: intp(5), zone: true, zoneAttempts: intp(3)},
		},
		"Elif": {
			{topped: true, topAttempts: intp(1), zone: true, zoneAttempts: intp(1)},
			{topped: true, topAttempts: intp(5), zone: true, zoneAttempts: intp(3)},
		},
		"Farid": {
			{topped: true, topAttempts: intp(2), zone: true, zoneAttempts: intp(1)},
		},
	}

	count := 0
	for _, u := range users {
		rs, ok := results[u.name]
		if !ok {
			continue
		}
		wall := problems[u.division]
		for i, r := range rs {
			if i >= len(wall) {
				break
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO ascents (problem_id, user_id, topped, top_attempts, zone, zone_attempts)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				wall[i], u.id, r.topped, nullableInt(r.topAttempts), r.zone, nullableInt(r.zoneAttempts)); err != nil {
				return count, fmt.Errorf("insert ascent for %s: %w", u.name, err)
			}
			count++
		}
	}
	return count, nil
}

// nullableInt converts a *int into a driver-friendly NULL or value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
