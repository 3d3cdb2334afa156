package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB is the move journal database
type DB struct {
	handler  *sql.DB
	log      zerolog.Logger
	lock     sync.RWMutex
	squirrel sq.StatementBuilderType
}

// NewDB opens (creating if needed) the journal database at path
func NewDB(path string, log zerolog.Logger) (*DB, error) {
	db := &DB{
		log:      log.With().Str("module", "database").Logger(),
		squirrel: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	var (
		err error
		DSN = path + "?_pragma=busy_timeout%3d1000"
	)

	db.handler, err = sql.Open("sqlite", DSN)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}

	if _, err = db.handler.Exec(`PRAGMA journal_mode = wal;`); err != nil {
		db.handler.Close()
		return nil, errors.Wrap(err, "unable to enable WAL mode")
	}

	if err := db.Migrate(); err != nil {
		db.handler.Close()
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return db, nil
}

// Migrate creates the journal tables or upgrades them to the newest
// version recorded in PRAGMA user_version.
func (db *DB) Migrate() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	var current int
	if err := db.handler.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return errors.Wrap(err, "failed to query schema version")
	}

	target := len(journalMigrations)
	switch {
	case current == target:
		return nil
	case current > target:
		return errors.Errorf("journal schema version %d is newer than supported %d", current, target)
	}

	tx, err := db.handler.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if current == 0 {
		if _, err := tx.Exec(journalSchema); err != nil {
			return errors.Wrap(err, "failed to create journal schema")
		}
		db.log.Debug().Int("version", target).Msg("created journal schema")
	} else {
		for v := current; v < target; v++ {
			if journalMigrations[v] == "" {
				continue
			}
			if _, err := tx.Exec(journalMigrations[v]); err != nil {
				return errors.Wrapf(err, "failed to upgrade journal schema to version %d", v+1)
			}
		}
		db.log.Info().Int("from", current).Int("to", target).Msg("upgraded journal schema")
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return errors.Wrap(err, "failed to bump schema version")
	}

	return tx.Commit()
}

// Close closes the database connection
func (db *DB) Close() error {
	if _, err := db.handler.Exec(`PRAGMA optimize;`); err != nil {
		return errors.Wrap(err, "query planner optimization")
	}

	return db.handler.Close()
}
