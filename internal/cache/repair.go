package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
	"github.com/varoOP/shotsort/internal/repository"
)

// RepairResult summarizes a cache repair.
type RepairResult struct {
	Documents  int
	Skipped    int
	Entries    int
	Truncated  bool
	BackupPath string
}

// Repair rewrites a cache file that older releases corrupted by appending a
// new JSON document on every run. All readable documents are merged in file
// order, later entries winning, and saved back as one current-version
// document. The original bytes are kept next to the file with a .bak suffix.
func Repair(ctx context.Context, path string, log zerolog.Logger) (RepairResult, error) {
	log = log.With().Str("module", "cache").Logger()
	res := RepairResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, errors.Wrapf(err, "failed to read cache file %s", path)
	}

	merged := domain.NewCacheFile()
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var raw map[string]json.RawMessage
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			if res.Documents == 0 && res.Skipped == 0 {
				return res, errors.Wrapf(domain.ErrCacheCorrupt, "%s: no readable document: %v", path, err)
			}
			log.Warn().Err(err).Int64("offset", dec.InputOffset()).Msg("dropping unreadable trailing data")
			res.Truncated = true
			break
		}

		doc, err := repository.DecodeCacheObject(raw)
		if raw == nil || err != nil {
			log.Warn().Err(err).Int("document", res.Documents+res.Skipped+1).Msg("skipping malformed document")
			res.Skipped++
			continue
		}

		for id, entry := range doc.Entries {
			merged.Set(id, entry)
		}
		res.Documents++
		log.Debug().
			Int("document", res.Documents).
			Str("version", doc.Version).
			Int("entries", doc.Len()).
			Msg("merged document")
	}

	if res.Documents == 0 {
		return res, errors.Wrapf(domain.ErrCacheCorrupt, "%s: no usable document", path)
	}

	res.BackupPath = path + ".bak"
	if err := os.WriteFile(res.BackupPath, data, 0644); err != nil {
		return res, errors.Wrapf(err, "failed to write backup %s", res.BackupPath)
	}

	repo := repository.NewCacheFileRepository(log, path)
	if err := repo.Save(ctx, merged); err != nil {
		return res, errors.Wrap(err, "failed to save repaired cache")
	}
	res.Entries = merged.Len()

	log.Info().
		Int("documents", res.Documents).
		Int("skipped", res.Skipped).
		Int("entries", res.Entries).
		Bool("truncated", res.Truncated).
		Msg("Cache repair complete")

	return res, nil
}
