package domain

import (
	"context"
	"time"
)

// MoveRecord is one file relocation performed by a run.
type MoveRecord struct {
	ID          int64
	RunID       string
	AppID       string
	Name        string
	Source      string
	Destination string
	MovedAt     time.Time
}

// MoveJournal records file moves so a run can be audited later.
type MoveJournal interface {
	RecordMove(ctx context.Context, rec MoveRecord) error
	ListMoves(ctx context.Context, limit uint64) ([]MoveRecord, error)
}

// RunRecord summarizes one run in the journal.
type RunRecord struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	Identifiers    int
	FilesMoved     int
	FoldersCreated int
}
