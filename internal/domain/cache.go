package domain

import (
	"context"
	"sort"
)

// VersionKey is the reserved cache key holding the schema version.
const VersionKey = "version"

// CacheEntry is a resolved name for one app ID. Verified is serialized as
// "steam" to stay readable by older cache files.
type CacheEntry struct {
	Name     string `json:"name"`
	Verified bool   `json:"steam"`
}

// CacheFile is the in-memory form of knownNames.json.
type CacheFile struct {
	Version string
	Entries map[string]CacheEntry
}

func NewCacheFile() *CacheFile {
	return &CacheFile{Entries: make(map[string]CacheEntry)}
}

func (c *CacheFile) Get(id string) (CacheEntry, bool) {
	e, ok := c.Entries[id]
	return e, ok
}

func (c *CacheFile) Set(id string, entry CacheEntry) {
	if c.Entries == nil {
		c.Entries = make(map[string]CacheEntry)
	}
	c.Entries[id] = entry
}

func (c *CacheFile) Len() int {
	return len(c.Entries)
}

// IDs returns the cached app IDs in ascending order.
func (c *CacheFile) IDs() []string {
	ids := make([]string, 0, len(c.Entries))
	for id := range c.Entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return CompareIDs(ids[i], ids[j]) < 0
	})
	return ids
}

// CacheRepository loads and persists the name cache.
type CacheRepository interface {
	Load(ctx context.Context) (*CacheFile, error)
	Save(ctx context.Context, cache *CacheFile) error
}
