package domain

import "github.com/pkg/errors"

var (
	// ErrCacheCorrupt is returned when the cache file cannot be parsed.
	ErrCacheCorrupt = errors.New("cache file is corrupt")
	// ErrNameNotFound is returned by lookups that got no usable title.
	ErrNameNotFound = errors.New("name not found")
	// ErrDestinationExists is returned when a move would overwrite a file.
	ErrDestinationExists = errors.New("destination file already exists")
)
