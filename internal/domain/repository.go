package domain

import "context"

// NameRecord is the editable form of a cache entry.
type NameRecord struct {
	AppID string `yaml:"appid"`
	Name  string `yaml:"name"`
	Steam bool   `yaml:"steam"`
}

// NameList is the YAML document written by names export.
type NameList struct {
	Names []NameRecord `yaml:"names"`
}

// NamesRepository exports cache entries for manual editing and reads them back.
type NamesRepository interface {
	Export(ctx context.Context, path string, cache *CacheFile, onlyUnverified bool) (int, error)
	Import(ctx context.Context, path string, cache *CacheFile) (int, error)
}
