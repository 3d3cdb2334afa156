package extract

import (
	"io/fs"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/varoOP/shotsort/internal/domain"
)

// IdentifierSet holds the distinct app IDs found in one scan.
type IdentifierSet map[string]struct{}

func (s IdentifierSet) Add(id string) {
	s[id] = struct{}{}
}

// Sorted returns the identifiers in ascending numeric order.
func (s IdentifierSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return domain.CompareIDs(ids[i], ids[j]) < 0
	})
	return ids
}

// Identifiers collects the app IDs of all non-directory entries that are not
// excluded and match the pattern. Non-matching files are skipped silently.
func Identifiers(entries []fs.DirEntry, p *Pattern, exclude map[string]struct{}) IdentifierSet {
	set := IdentifierSet{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, skip := exclude[entry.Name()]; skip {
			continue
		}
		if id, ok := p.Identifier(entry.Name()); ok {
			set.Add(id)
		}
	}
	return set
}

// ScanDir reads dir one level deep and extracts its identifiers.
func ScanDir(dir string, p *Pattern, exclude map[string]struct{}) (IdentifierSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}
	return Identifiers(entries, p, exclude), nil
}
