package resolver

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

type fakeLookup struct {
	names map[string]string
	err   error
	calls map[string]int
}

func newFakeLookup(names map[string]string) *fakeLookup {
	return &fakeLookup{names: names, calls: make(map[string]int)}
}

func (f *fakeLookup) LookupName(ctx context.Context, id string) (string, error) {
	f.calls[id]++
	if f.err != nil {
		return "", f.err
	}
	name, ok := f.names[id]
	if !ok {
		return "", domain.ErrNameNotFound
	}
	return name, nil
}

func TestResolveVerifiedName(t *testing.T) {
	lookup := newFakeLookup(map[string]string{"440": "Team Fortress 2"})
	svc := NewService(zerolog.Nop(), lookup)
	cache := domain.NewCacheFile()

	if got := svc.Resolve(context.Background(), "440", cache); got != "Team Fortress 2" {
		t.Fatalf("Resolve = %q, want Team Fortress 2", got)
	}
	entry, ok := cache.Get("440")
	if !ok || !entry.Verified || entry.Name != "Team Fortress 2" {
		t.Fatalf("unexpected cache entry %+v (found=%v)", entry, ok)
	}
}

func TestResolveTwiceCallsLookupOnce(t *testing.T) {
	lookup := newFakeLookup(map[string]string{"440": "Team Fortress 2"})
	svc := NewService(zerolog.Nop(), lookup)
	cache := domain.NewCacheFile()
	ctx := context.Background()

	first := svc.Resolve(ctx, "440", cache)
	second := svc.Resolve(ctx, "440", cache)
	if first != second {
		t.Fatalf("Resolve returned %q then %q", first, second)
	}
	if lookup.calls["440"] != 1 {
		t.Fatalf("lookup called %d times, want 1", lookup.calls["440"])
	}
}

func TestResolveFallbackIsSticky(t *testing.T) {
	lookup := newFakeLookup(nil)
	svc := NewService(zerolog.Nop(), lookup)
	cache := domain.NewCacheFile()
	ctx := context.Background()

	if got := svc.Resolve(ctx, "1000", cache); got != "1000" {
		t.Fatalf("Resolve = %q, want 1000", got)
	}
	lookup.names = map[string]string{"1000": "Late Name"}
	if got := svc.Resolve(ctx, "1000", cache); got != "1000" {
		t.Fatalf("second Resolve = %q, want cached fallback 1000", got)
	}
	if lookup.calls["1000"] != 1 {
		t.Fatalf("lookup called %d times, want 1", lookup.calls["1000"])
	}
	if entry, _ := cache.Get("1000"); entry.Verified {
		t.Fatal("fallback entry must not be verified")
	}
}

func TestResolveHardFailureFallsBack(t *testing.T) {
	lookup := newFakeLookup(nil)
	lookup.err = errors.New("connection refused")
	svc := NewService(zerolog.Nop(), lookup)
	cache := domain.NewCacheFile()

	if got := svc.Resolve(context.Background(), "570", cache); got != "570" {
		t.Fatalf("Resolve = %q, want 570", got)
	}
	if entry, _ := cache.Get("570"); entry.Verified || entry.Name != "570" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestResolveCacheHitSkipsLookup(t *testing.T) {
	lookup := newFakeLookup(map[string]string{"440": "Team Fortress 2"})
	svc := NewService(zerolog.Nop(), lookup)
	cache := domain.NewCacheFile()
	cache.Set("440", domain.CacheEntry{Name: "TF2 (renamed)", Verified: false})

	if got := svc.Resolve(context.Background(), "440", cache); got != "TF2 (renamed)" {
		t.Fatalf("Resolve = %q, want cached name", got)
	}
	if lookup.calls["440"] != 0 {
		t.Fatal("lookup must not be called on a cache hit")
	}
}

func TestResolveOutOfRangeNeverLooksUp(t *testing.T) {
	ids := []string{
		"0",
		"9223372036854775807",
		"9223372036854775808",
		"99999999999999999999999",
		"abc",
		"",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			lookup := newFakeLookup(map[string]string{id: "should not be used"})
			svc := NewService(zerolog.Nop(), lookup)
			cache := domain.NewCacheFile()

			if got := svc.Resolve(context.Background(), id, cache); got != id {
				t.Fatalf("Resolve = %q, want %q", got, id)
			}
			if lookup.calls[id] != 0 {
				t.Fatal("lookup must not be called for out-of-range ids")
			}
			if entry, ok := cache.Get(id); !ok || entry.Verified {
				t.Fatalf("unexpected entry %+v (found=%v)", entry, ok)
			}
		})
	}
}

func TestInLookupRange(t *testing.T) {
	tests := map[string]bool{
		"1":                   true,
		"440":                 true,
		"9223372036854775806": true,
		"9223372036854775807": false,
		"0":                   false,
		"-5":                  false,
		"12a":                 false,
	}
	for id, want := range tests {
		if got := InLookupRange(id); got != want {
			t.Errorf("InLookupRange(%q) = %v, want %v", id, got, want)
		}
	}
}
