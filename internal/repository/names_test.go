package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

func TestNamesExportOnlyUnverified(t *testing.T) {
	repo := NewNamesFileRepository(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "names.yaml")

	cache := domain.NewCacheFile()
	cache.Set("440", domain.CacheEntry{Name: "Team Fortress 2", Verified: true})
	cache.Set("1000", domain.CacheEntry{Name: "1000", Verified: false})
	cache.Set("20", domain.CacheEntry{Name: "20", Verified: false})

	n, err := repo.Export(context.Background(), path, cache, true)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Fatalf("exported %d records, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "Team Fortress 2") {
		t.Errorf("verified entry exported:\n%s", text)
	}
	if strings.Index(text, `appid: "20"`) > strings.Index(text, `appid: "1000"`) {
		t.Errorf("records not sorted by app id:\n%s", text)
	}
}

func TestNamesImportAppliesEdits(t *testing.T) {
	repo := NewNamesFileRepository(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "names.yaml")

	cache := domain.NewCacheFile()
	cache.Set("440", domain.CacheEntry{Name: "Team Fortress 2", Verified: true})
	cache.Set("1000", domain.CacheEntry{Name: "1000", Verified: false})

	edited := `names:
  - appid: "440"
    name: Team Fortress 2
    steam: true
  - appid: "1000"
    name: My Mod
    steam: false
  - appid: "2000"
    name: ""
  - appid: version
    name: nope
`
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changed, err := repo.Import(context.Background(), path, cache)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	if got, _ := cache.Get("1000"); got.Name != "My Mod" || got.Verified {
		t.Errorf("unexpected entry for 1000: %+v", got)
	}
	if _, ok := cache.Get("2000"); ok {
		t.Error("record without a name should be skipped")
	}
	if _, ok := cache.Get(domain.VersionKey); ok {
		t.Error("reserved key must never become an entry")
	}
}
