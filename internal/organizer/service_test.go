package organizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
	"github.com/varoOP/shotsort/internal/extract"
)

type memJournal struct {
	records []domain.MoveRecord
	err     error
}

func (j *memJournal) RecordMove(ctx context.Context, rec domain.MoveRecord) error {
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, rec)
	return nil
}

func (j *memJournal) ListMoves(ctx context.Context, limit uint64) ([]domain.MoveRecord, error) {
	return j.records, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newService(dir string, journal domain.MoveJournal) Service {
	return NewService(zerolog.Nop(), Options{
		Dir:     dir,
		Pattern: extract.MustCompile(domain.DefaultPattern),
		Exclude: map[string]struct{}{domain.DefaultCacheFile: {}},
		Journal: journal,
		RunID:   "run-1",
	})
}

func TestGroupMovesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "440_screenshot1.png"))
	touch(t, filepath.Join(dir, "440_screenshot2.png"))
	touch(t, filepath.Join(dir, "1440_screenshot1.png"))
	touch(t, filepath.Join(dir, "readme.txt"))

	journal := &memJournal{}
	res, err := newService(dir, journal).Group(context.Background(), "440", "Team Fortress 2")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}

	folder := filepath.Join(dir, "Team Fortress 2")
	if res.Folder != folder || !res.Created {
		t.Fatalf("unexpected result %+v", res)
	}
	for _, name := range []string{"440_screenshot1.png", "440_screenshot2.png"} {
		if !exists(filepath.Join(folder, name)) {
			t.Errorf("%s not moved into folder", name)
		}
		if exists(filepath.Join(dir, name)) {
			t.Errorf("%s still at top level", name)
		}
	}
	if !exists(filepath.Join(dir, "1440_screenshot1.png")) {
		t.Error("1440 screenshot must stay at top level")
	}
	if !exists(filepath.Join(dir, "readme.txt")) {
		t.Error("readme.txt must stay at top level")
	}
	if len(res.Moved) != 2 {
		t.Errorf("moved %d files, want 2", len(res.Moved))
	}
	if len(journal.records) != 2 || journal.records[0].RunID != "run-1" || journal.records[0].AppID != "440" {
		t.Errorf("unexpected journal records %+v", journal.records)
	}
}

func TestGroupSanitizesFolderName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "220_1.png"))

	res, err := newService(dir, nil).Group(context.Background(), "220", "Half-Life 2: Episode/One")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := filepath.Join(dir, "Half-Life 2  Episode One")
	if res.Folder != want {
		t.Fatalf("folder = %q, want %q", res.Folder, want)
	}
	if !exists(filepath.Join(want, "220_1.png")) {
		t.Fatal("file not moved into sanitized folder")
	}
}

func TestGroupExistingFolderIsReused(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Dota 2")
	if err := os.Mkdir(folder, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, filepath.Join(folder, "570_old.png"))
	touch(t, filepath.Join(dir, "570_new.png"))

	res, err := newService(dir, nil).Group(context.Background(), "570", "Dota 2")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if res.Created {
		t.Error("existing folder reported as created")
	}
	if !exists(filepath.Join(folder, "570_old.png")) || !exists(filepath.Join(folder, "570_new.png")) {
		t.Error("folder contents not as expected")
	}
}

func TestGroupCollisionIsFatal(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Dota 2")
	if err := os.Mkdir(folder, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, filepath.Join(folder, "570_1.png"))
	touch(t, filepath.Join(dir, "570_1.png"))

	_, err := newService(dir, nil).Group(context.Background(), "570", "Dota 2")
	if !errors.Is(err, domain.ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	if !exists(filepath.Join(dir, "570_1.png")) {
		t.Error("source must stay in place after a collision")
	}
}

func TestGroupDestinationIsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Dota 2"))
	touch(t, filepath.Join(dir, "570_1.png"))

	if _, err := newService(dir, nil).Group(context.Background(), "570", "Dota 2"); err == nil {
		t.Fatal("expected error when destination is a file")
	}
}

func TestGroupSkipsExcludedAndDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "440_1.png"))
	if err := os.Mkdir(filepath.Join(dir, "440_album"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	svc := NewService(zerolog.Nop(), Options{
		Dir:     dir,
		Pattern: extract.MustCompile(domain.DefaultPattern),
		Exclude: map[string]struct{}{"440_1.png": {}},
		Quiet:   true,
	})
	res, err := svc.Group(context.Background(), "440", "Team Fortress 2")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(res.Moved) != 0 {
		t.Fatalf("moved %v, want nothing", res.Moved)
	}
	if !exists(filepath.Join(dir, "440_album")) {
		t.Error("directory must never be moved")
	}
}

func TestGroupJournalFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "440_1.png"))

	journal := &memJournal{err: errors.New("database is locked")}
	res, err := newService(dir, journal).Group(context.Background(), "440", "Team Fortress 2")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(res.Moved) != 1 {
		t.Fatalf("moved %d files, want 1", len(res.Moved))
	}
}
