package repository

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
	"gopkg.in/yaml.v3"
)

// NamesFileRepository implements domain.NamesRepository with YAML files
type NamesFileRepository struct {
	log zerolog.Logger
}

// NewNamesFileRepository creates a new YAML names repository
func NewNamesFileRepository(log zerolog.Logger) *NamesFileRepository {
	return &NamesFileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.NamesRepository = (*NamesFileRepository)(nil)

// Export writes cache entries as an editable YAML list sorted by app ID
func (r *NamesFileRepository) Export(ctx context.Context, path string, cache *domain.CacheFile, onlyUnverified bool) (int, error) {
	list := &domain.NameList{}
	for _, id := range cache.IDs() {
		entry, _ := cache.Get(id)
		if onlyUnverified && entry.Verified {
			continue
		}
		list.Names = append(list.Names, domain.NameRecord{
			AppID: id,
			Name:  entry.Name,
			Steam: entry.Verified,
		})
	}

	b, err := yaml.Marshal(list)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal yaml")
	}

	if err := writeFileAtomic(path, b); err != nil {
		return 0, errors.Wrapf(err, "failed to write names file %s", path)
	}

	r.log.Debug().Str("path", path).Int("count", len(list.Names)).Msg("exported names")
	return len(list.Names), nil
}

// Import applies names from a YAML file to cache and returns how many entries changed
func (r *NamesFileRepository) Import(ctx context.Context, path string, cache *domain.CacheFile) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read names file %s", path)
	}

	list := &domain.NameList{}
	if err := yaml.Unmarshal(b, list); err != nil {
		return 0, errors.Wrap(err, "failed to unmarshal yaml")
	}

	changed := 0
	for _, rec := range list.Names {
		id := strings.TrimSpace(rec.AppID)
		if id == "" || id == domain.VersionKey {
			r.log.Warn().Str("appid", rec.AppID).Msg("skipping record with invalid app id")
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			r.log.Warn().Str("appid", id).Msg("skipping record without a name")
			continue
		}

		next := domain.CacheEntry{Name: rec.Name, Verified: rec.Steam}
		if current, ok := cache.Get(id); ok && current == next {
			continue
		}

		cache.Set(id, next)
		changed++
		r.log.Debug().Str("appid", id).Str("name", rec.Name).Msg("updated name")
	}

	return changed, nil
}
