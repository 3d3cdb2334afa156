package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/cache"
	"github.com/varoOP/shotsort/internal/config"
	"github.com/varoOP/shotsort/internal/database"
	"github.com/varoOP/shotsort/internal/domain"
	"github.com/varoOP/shotsort/internal/extract"
	"github.com/varoOP/shotsort/internal/logger"
	"github.com/varoOP/shotsort/internal/notification"
	"github.com/varoOP/shotsort/internal/organizer"
	"github.com/varoOP/shotsort/internal/repository"
	"github.com/varoOP/shotsort/internal/resolver"
	"github.com/varoOP/shotsort/internal/steam"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	pattern             *extract.Pattern
	cacheRepo           *repository.CacheFileRepository
	namesRepo           domain.NamesRepository
	lookup              domain.NameLookup
	notificationService domain.NotificationService
}

// NewApp loads the configuration and builds an App logging to stderr.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return New(logger.NewLoggerFromString(cfg.LogLevel), cfg)
}

// New creates an application instance from an already loaded config.
func New(log zerolog.Logger, cfg *domain.Config) (*App, error) {
	pattern, err := extract.Compile(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:                 log,
		config:              cfg,
		pattern:             pattern,
		cacheRepo:           repository.NewCacheFileRepository(log, config.CachePath(cfg)),
		namesRepo:           repository.NewNamesFileRepository(log),
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}

	if cfg.Connect {
		lookup, err := newLookup(log, cfg)
		if err != nil {
			return nil, err
		}
		a.lookup = lookup
	}

	return a, nil
}

// newLookup returns the appdetails API, backed by the store page scraper when enabled.
func newLookup(log zerolog.Logger, cfg *domain.Config) (domain.NameLookup, error) {
	api := steam.NewAPIService(log, cfg)
	if !cfg.StoreFallback {
		return api, nil
	}

	store, err := steam.NewStoreService(log, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create store scraper")
	}
	return steam.Chain{api, store}, nil
}

// Run sorts the screenshots in the scan directory into per-game folders
func (a *App) Run(ctx context.Context) (err error) {
	startedAt := time.Now()
	runID := uuid.NewString()
	log := a.log.With().Str("run", runID).Logger()

	// Send error notification if run fails
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	known, err := a.cacheRepo.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load cache")
	}

	if !a.pattern.HasGroup() {
		log.Warn().Str("pattern", a.pattern.String()).Msg("pattern has no capture group, nothing will be extracted")
	}

	exclude := a.excluded()
	ids, err := extract.ScanDir(a.config.Dir, a.pattern, exclude)
	if err != nil {
		return err
	}

	log.Info().
		Str("dir", a.config.Dir).
		Int("app_ids", len(ids)).
		Bool("offline", !a.config.Connect).
		Bool("json_only", a.config.JSONOnly).
		Msg("Starting run")

	var (
		journalRepo *database.JournalRepo
		journal     domain.MoveJournal
	)
	if a.config.JournalPath != "" && !a.config.JSONOnly {
		db, err := database.NewDB(a.config.JournalPath, a.log)
		if err != nil {
			return errors.Wrap(err, "failed to open move journal")
		}
		defer db.Close()
		journalRepo = database.NewJournalRepo(a.log, db)
		journal = journalRepo
	}

	resolverService := resolver.NewService(log, a.lookup)
	organizerService := organizer.NewService(log, organizer.Options{
		Dir:     a.config.Dir,
		Pattern: a.pattern,
		Exclude: exclude,
		Quiet:   a.config.Quiet,
		Journal: journal,
		RunID:   runID,
	})

	stats := domain.Statistics{
		Identifiers: len(ids),
		Offline:     !a.config.Connect,
		JSONOnly:    a.config.JSONOnly,
	}

	for _, id := range ids.Sorted() {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := id
		if a.config.Connect {
			name = resolverService.Resolve(ctx, id, known)
		}

		if entry, ok := known.Get(id); ok && entry.Verified && a.config.Connect {
			stats.Verified++
		} else {
			stats.Fallback++
		}

		if a.config.JSONOnly {
			continue
		}

		res, err := organizerService.Group(ctx, id, name)
		if err != nil {
			return errors.Wrapf(err, "failed to group app %s", id)
		}
		stats.FilesMoved += len(res.Moved)
		if res.Created {
			stats.FoldersCreated++
		}
	}

	if err := a.cacheRepo.Save(ctx, known); err != nil {
		return errors.Wrap(err, "failed to save cache")
	}
	stats.CacheEntries = known.Len()

	if journalRepo != nil {
		a.journalRun(ctx, log, journalRepo, domain.RunRecord{
			RunID:          runID,
			StartedAt:      startedAt,
			FinishedAt:     time.Now(),
			Identifiers:    stats.Identifiers,
			FilesMoved:     stats.FilesMoved,
			FoldersCreated: stats.FoldersCreated,
		})
	}

	log.Info().
		Int("app_ids", stats.Identifiers).
		Int("verified", stats.Verified).
		Int("fallback", stats.Fallback).
		Int("files_moved", stats.FilesMoved).
		Int("folders_created", stats.FoldersCreated).
		Int("cache_entries", stats.CacheEntries).
		Msg("=== RUN COMPLETE ===")

	// Send success notification
	if notifyErr := a.notificationService.SendSuccess(ctx, stats); notifyErr != nil {
		log.Warn().Err(notifyErr).Msg("Failed to send success notification")
	}

	return nil
}

// journalRun stores the run summary and checks it against the recorded moves.
// Journal problems never fail the run.
func (a *App) journalRun(ctx context.Context, log zerolog.Logger, repo *database.JournalRepo, run domain.RunRecord) {
	if err := repo.RecordRun(ctx, run); err != nil {
		log.Warn().Err(err).Msg("failed to record run")
	}

	recorded, err := repo.CountByRun(ctx, run.RunID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count journaled moves")
		return
	}
	if recorded != run.FilesMoved {
		log.Warn().Int("journaled", recorded).Int("moved", run.FilesMoved).Msg("journal is missing moves")
		return
	}
	log.Debug().Int("journaled", recorded).Msg("journal up to date")
}

// excluded lists the file names in the scan directory that are never screenshots.
// The cache and the journal only count when they live in that directory.
func (a *App) excluded() map[string]struct{} {
	exclude := map[string]struct{}{}
	if a.config.ProgramName != "" {
		exclude[a.config.ProgramName] = struct{}{}
	}
	if cachePath := a.cacheRepo.Path(); sameDir(filepath.Dir(cachePath), a.config.Dir) {
		exclude[filepath.Base(cachePath)] = struct{}{}
	}
	if a.config.JournalPath != "" && sameDir(filepath.Dir(a.config.JournalPath), a.config.Dir) {
		base := filepath.Base(a.config.JournalPath)
		for _, suffix := range []string{"", "-wal", "-shm"} {
			exclude[base+suffix] = struct{}{}
		}
	}
	return exclude
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// RepairCache rewrites a cache file holding several appended documents as one.
func (a *App) RepairCache(ctx context.Context) (cache.RepairResult, error) {
	return cache.Repair(ctx, a.cacheRepo.Path(), a.log)
}

// ExportNames writes the cached names to a YAML file for hand editing.
func (a *App) ExportNames(ctx context.Context, path string, onlyUnverified bool) (int, error) {
	known, err := a.cacheRepo.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load cache")
	}
	return a.namesRepo.Export(ctx, path, known, onlyUnverified)
}

// ImportNames applies an edited YAML name list to the cache and saves it.
func (a *App) ImportNames(ctx context.Context, path string) (int, error) {
	known, err := a.cacheRepo.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load cache")
	}

	changed, err := a.namesRepo.Import(ctx, path, known)
	if err != nil {
		return 0, err
	}

	if err := a.cacheRepo.Save(ctx, known); err != nil {
		return 0, errors.Wrap(err, "failed to save cache")
	}
	return changed, nil
}

// History returns the most recent journal entries, newest first.
func (a *App) History(ctx context.Context, limit uint64) ([]domain.MoveRecord, error) {
	if a.config.JournalPath == "" {
		return nil, errors.New("no move journal configured (set journal or --journal)")
	}

	db, err := database.NewDB(a.config.JournalPath, a.log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open move journal")
	}
	defer db.Close()

	return database.NewJournalRepo(a.log, db).ListMoves(ctx, limit)
}
