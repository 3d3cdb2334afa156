package database

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// JournalRepo implements domain.MoveJournal
type JournalRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewJournalRepo creates a new journal repository
func NewJournalRepo(log zerolog.Logger, db *DB) *JournalRepo {
	return &JournalRepo{
		log: log.With().Str("repo", "journal").Logger(),
		db:  db,
	}
}

var _ domain.MoveJournal = (*JournalRepo)(nil)

// RecordMove inserts one move
func (r *JournalRepo) RecordMove(ctx context.Context, rec domain.MoveRecord) error {
	movedAt := rec.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now()
	}

	queryBuilder := r.db.squirrel.
		Insert("moves").
		Columns("run_id", "app_id", "name", "source", "destination", "moved_at").
		Values(rec.RunID, rec.AppID, rec.Name, rec.Source, rec.Destination, movedAt.UTC().Format(time.RFC3339Nano))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("RecordMove")

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// ListMoves returns the most recent moves first. A limit of 0 returns all.
func (r *JournalRepo) ListMoves(ctx context.Context, limit uint64) ([]domain.MoveRecord, error) {
	queryBuilder := r.db.squirrel.
		Select("id", "run_id", "app_id", "name", "source", "destination", "moved_at").
		From("moves").
		OrderBy("id DESC")
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("ListMoves")

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	var records []domain.MoveRecord
	for rows.Next() {
		var (
			rec     domain.MoveRecord
			movedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.AppID, &rec.Name, &rec.Source, &rec.Destination, &movedAt); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		if t, err := time.Parse(time.RFC3339Nano, movedAt); err == nil {
			rec.MovedAt = t
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return records, nil
}

// RecordRun stores the summary of a finished run
func (r *JournalRepo) RecordRun(ctx context.Context, run domain.RunRecord) error {
	query, args, err := r.db.squirrel.
		Insert("runs").
		Columns("run_id", "started_at", "finished_at", "app_ids", "files_moved", "folders_created").
		Values(
			run.RunID,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.FinishedAt.UTC().Format(time.RFC3339Nano),
			run.Identifiers,
			run.FilesMoved,
			run.FoldersCreated,
		).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("RecordRun")

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}
	return nil
}

// CountByRun returns how many moves a run recorded
func (r *JournalRepo) CountByRun(ctx context.Context, runID string) (int, error) {
	query, args, err := r.db.squirrel.
		Select("COUNT(*)").
		From("moves").
		Where(sq.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	var count int
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error executing query")
	}
	return count, nil
}
