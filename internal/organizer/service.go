package organizer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
	"github.com/varoOP/shotsort/internal/extract"
	"github.com/varoOP/shotsort/internal/format"
)

type Service interface {
	Group(ctx context.Context, id, name string) (Result, error)
}

// Result describes what one Group call did.
type Result struct {
	Folder  string
	Created bool
	Moved   []string
}

// Options configures the organizer. Journal may be nil.
type Options struct {
	Dir     string
	Pattern *extract.Pattern
	Exclude map[string]struct{}
	Quiet   bool
	Journal domain.MoveJournal
	RunID   string
}

type service struct {
	log  zerolog.Logger
	opts Options
}

func NewService(log zerolog.Logger, opts Options) Service {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &service{
		log:  log.With().Str("module", "organizer").Logger(),
		opts: opts,
	}
}

// Group moves every screenshot of id from the scan directory into a folder
// named after the sanitized name. A file that already exists at the
// destination stops the run with domain.ErrDestinationExists.
func (s *service) Group(ctx context.Context, id, name string) (Result, error) {
	folder := format.FolderName(id, name)
	dest := filepath.Join(s.opts.Dir, folder)
	res := Result{Folder: dest}

	created, err := s.ensureDir(dest)
	if err != nil {
		return res, err
	}
	res.Created = created

	matcher, err := s.opts.Pattern.Matcher(id)
	if err != nil {
		return res, errors.Wrapf(err, "failed to build matcher for %s", id)
	}

	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		return res, errors.Wrapf(err, "failed to read directory %s", s.opts.Dir)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if entry.IsDir() {
			continue
		}
		if _, skip := s.opts.Exclude[entry.Name()]; skip {
			continue
		}
		if !matcher.Match(entry.Name()) {
			continue
		}

		src := filepath.Join(s.opts.Dir, entry.Name())
		dst := filepath.Join(dest, entry.Name())
		if err := moveFile(src, dst); err != nil {
			return res, err
		}
		res.Moved = append(res.Moved, dst)

		s.event().Str("from", src).Str("to", dst).Msg("moved")
		s.record(ctx, id, name, src, dst)
	}

	return res, nil
}

func (s *service) ensureDir(dest string) (bool, error) {
	info, err := os.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return false, errors.Errorf("destination %s exists and is not a directory", dest)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, errors.Wrapf(err, "failed to stat %s", dest)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return false, errors.Wrapf(err, "failed to create directory %s", dest)
	}
	s.event().Str("path", dest).Msg("created folder")
	return true, nil
}

func (s *service) event() *zerolog.Event {
	if s.opts.Quiet {
		return s.log.Debug()
	}
	return s.log.Info()
}

func (s *service) record(ctx context.Context, id, name, src, dst string) {
	if s.opts.Journal == nil {
		return
	}
	rec := domain.MoveRecord{
		RunID:       s.opts.RunID,
		AppID:       id,
		Name:        name,
		Source:      src,
		Destination: dst,
		MovedAt:     time.Now(),
	}
	if err := s.opts.Journal.RecordMove(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("appid", id).Str("to", dst).Msg("failed to record move")
	}
}

func moveFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return errors.Wrapf(domain.ErrDestinationExists, "move %s to %s", src, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "failed to stat %s", dst)
	}

	if err := os.Rename(src, dst); err != nil {
		return errors.Wrapf(err, "failed to move %s", src)
	}
	return nil
}
