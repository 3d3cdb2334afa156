package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// CacheFileRepository implements domain.CacheRepository on top of a single JSON file
type CacheFileRepository struct {
	log  zerolog.Logger
	path string
}

// NewCacheFileRepository creates a repository for the cache file at path
func NewCacheFileRepository(log zerolog.Logger, path string) *CacheFileRepository {
	return &CacheFileRepository{
		log:  log.With().Str("module", "repository").Logger(),
		path: path,
	}
}

var _ domain.CacheRepository = (*CacheFileRepository)(nil)

func (r *CacheFileRepository) Path() string {
	return r.path
}

// Load reads the cache file. A missing file yields an empty cache. A file
// without the current schema version is discarded and an empty cache is
// returned; unparseable content is an error wrapping domain.ErrCacheCorrupt.
func (r *CacheFileRepository) Load(ctx context.Context) (*domain.CacheFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug().Str("path", r.path).Msg("cache file does not exist, starting empty")
			return domain.NewCacheFile(), nil
		}
		return nil, errors.Wrapf(err, "failed to read cache file %s", r.path)
	}

	raw, err := decodeDocument(data)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrCacheCorrupt, "%s: %v", r.path, err)
	}

	version, ok := documentVersion(raw)
	if !ok {
		r.log.Warn().Str("path", r.path).Msg("No version number found, discarding cache")
		return domain.NewCacheFile(), nil
	}

	switch cmp := domain.CompareVersions(version, domain.SchemaVersion); {
	case cmp < 0:
		r.log.Warn().
			Str("version", version).
			Str("current", domain.SchemaVersion).
			Msg("Unknown cache version, discarding cache")
		return domain.NewCacheFile(), nil
	case cmp > 0:
		r.log.Warn().
			Str("version", version).
			Str("current", domain.SchemaVersion).
			Msg("Cache version is newer than supported, discarding cache")
		return domain.NewCacheFile(), nil
	}

	cache, err := decodeEntries(raw)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrCacheCorrupt, "%s: %v", r.path, err)
	}
	cache.Version = version

	r.log.Debug().Str("path", r.path).Int("entries", cache.Len()).Msg("loaded cache")
	return cache, nil
}

// Save stamps the schema version and rewrites the whole file atomically.
func (r *CacheFileRepository) Save(ctx context.Context, cache *domain.CacheFile) error {
	if cache == nil {
		cache = domain.NewCacheFile()
	}
	cache.Version = domain.SchemaVersion

	data, err := EncodeCacheFile(cache)
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache")
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return errors.Wrapf(err, "failed to write cache file %s", r.path)
	}

	r.log.Debug().Str("path", r.path).Int("entries", cache.Len()).Msg("stored cache")
	return nil
}

// EncodeCacheFile renders the cache as a single JSON object with the version
// under the reserved key.
func EncodeCacheFile(cache *domain.CacheFile) ([]byte, error) {
	doc := make(map[string]any, cache.Len()+1)
	for id, entry := range cache.Entries {
		doc[id] = entry
	}
	doc[domain.VersionKey] = cache.Version

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeCacheFile parses a cache document without applying version gating.
func decodeCacheFile(data []byte) (*domain.CacheFile, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return DecodeCacheObject(raw)
}

// DecodeCacheObject converts an already split JSON object into a cache.
func DecodeCacheObject(raw map[string]json.RawMessage) (*domain.CacheFile, error) {
	cache, err := decodeEntries(raw)
	if err != nil {
		return nil, err
	}
	cache.Version, _ = documentVersion(raw)
	return cache, nil
}

func decodeDocument(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("document is not a JSON object")
	}
	return raw, nil
}

func documentVersion(raw map[string]json.RawMessage) (string, bool) {
	v, ok := raw[domain.VersionKey]
	if !ok {
		return "", false
	}
	var version string
	if err := json.Unmarshal(v, &version); err != nil || version == "" {
		return "", false
	}
	return version, true
}

type entryJSON struct {
	Name  *string `json:"name"`
	Steam bool    `json:"steam"`
}

func decodeEntries(raw map[string]json.RawMessage) (*domain.CacheFile, error) {
	cache := domain.NewCacheFile()
	for id, value := range raw {
		if id == domain.VersionKey {
			continue
		}

		var e *entryJSON
		if err := json.Unmarshal(value, &e); err != nil {
			return nil, errors.Wrapf(err, "entry %q", id)
		}
		if e == nil || e.Name == nil {
			return nil, errors.Errorf("entry %q has no name", id)
		}
		cache.Set(id, domain.CacheEntry{Name: *e.Name, Verified: e.Steam})
	}
	return cache, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to set file mode")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to rename temp file")
	}
	return nil
}
