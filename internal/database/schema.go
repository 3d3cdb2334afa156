package database

const journalSchema = `
CREATE TABLE moves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	app_id TEXT NOT NULL,
	name TEXT NOT NULL,
	source TEXT NOT NULL,
	destination TEXT NOT NULL,
	moved_at TIMESTAMP NOT NULL
);

CREATE INDEX idx_moves_run_id ON moves(run_id);
CREATE INDEX idx_moves_app_id ON moves(app_id);

CREATE TABLE runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	app_ids INTEGER NOT NULL DEFAULT 0,
	files_moved INTEGER NOT NULL DEFAULT 0,
	folders_created INTEGER NOT NULL DEFAULT 0
);
`

// journalMigrations[i] upgrades a database from user_version i to i+1.
// A fresh database gets journalSchema and skips straight to the last version.
var journalMigrations = []string{
	"",
	`CREATE TABLE runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	app_ids INTEGER NOT NULL DEFAULT 0,
	files_moved INTEGER NOT NULL DEFAULT 0,
	folders_created INTEGER NOT NULL DEFAULT 0
);`,
}
