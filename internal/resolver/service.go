package resolver

import (
	"context"
	"math"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

type Service interface {
	Resolve(ctx context.Context, id string, cache *domain.CacheFile) string
}

type service struct {
	log    zerolog.Logger
	lookup domain.NameLookup
}

func NewService(log zerolog.Logger, lookup domain.NameLookup) Service {
	return &service{
		log:    log.With().Str("module", "resolver").Logger(),
		lookup: lookup,
	}
}

// Resolve returns the display name for id. Cached entries win regardless of
// their verified flag; otherwise the lookup is asked once and the outcome,
// success or fallback to the id itself, is stored in cache.
func (s *service) Resolve(ctx context.Context, id string, cache *domain.CacheFile) string {
	if entry, ok := cache.Get(id); ok {
		s.log.Debug().Str("appid", id).Str("name", entry.Name).Bool("steam", entry.Verified).Msg("cache hit")
		return entry.Name
	}

	entry := domain.CacheEntry{Name: id, Verified: false}

	if InLookupRange(id) && s.lookup != nil {
		name, err := s.lookup.LookupName(ctx, id)
		if err != nil || name == "" {
			s.log.Warn().Err(err).Str("appid", id).Msg("no name found, using app id")
		} else {
			entry = domain.CacheEntry{Name: name, Verified: true}
			s.log.Debug().Str("appid", id).Str("name", name).Msg("resolved name")
		}
	} else {
		s.log.Debug().Str("appid", id).Msg("app id out of lookup range, using app id")
	}

	cache.Set(id, entry)
	return entry.Name
}

// InLookupRange reports whether id is a base-10 integer strictly between 0
// and math.MaxInt64. Anything else is never sent to the remote lookup.
func InLookupRange(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false
	}
	return n > 0 && n < math.MaxInt64
}
