package facts

// sqliteSchema bootstraps the sqlite backend. The postgres backend's schema
// is owned by the surrounding CRUD system and is not created here.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS competitions (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS divisions (
	id             TEXT PRIMARY KEY,
	competition_id TEXT NOT NULL REFERENCES competitions(id),
	name           TEXT NOT NULL,
	sort_order     INTEGER,
	UNIQUE (competition_id, name)
);

CREATE TABLE IF NOT EXISTS problems (
	id             TEXT PRIMARY KEY,
	competition_id TEXT NOT NULL REFERENCES competitions(id),
	division_id    TEXT REFERENCES divisions(id),
	name           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	display_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
	competition_id TEXT NOT NULL REFERENCES competitions(id),
	user_id        TEXT NOT NULL REFERENCES users(id),
	division_id    TEXT REFERENCES divisions(id),
	joined_at      TIMESTAMP NOT NULL,
	PRIMARY KEY (competition_id, user_id)
);

CREATE TABLE IF NOT EXISTS ascents (
	problem_id    TEXT NOT NULL REFERENCES problems(id),
	user_id       TEXT NOT NULL REFERENCES users(id),
	topped        INTEGER NOT NULL DEFAULT 0,
	top_attempts  INTEGER,
	zone          INTEGER NOT NULL DEFAULT 0,
	zone_attempts INTEGER,
	PRIMARY KEY (problem_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_divisions_competition ON divisions(competition_id);
CREATE INDEX IF NOT EXISTS idx_problems_competition ON problems(competition_id);
CREATE INDEX IF NOT EXISTS idx_problems_division ON problems(division_id);
CREATE INDEX IF NOT EXISTS idx_ascents_user ON ascents(user_id);
`
