package steam

import (
	"context"

	"github.com/varoOP/shotsort/internal/domain"
)

// Chain asks each lookup in order and returns the first name found.
type Chain []domain.NameLookup

var _ domain.NameLookup = Chain(nil)

func (c Chain) LookupName(ctx context.Context, id string) (string, error) {
	err := domain.ErrNameNotFound
	for _, lookup := range c {
		name, lerr := lookup.LookupName(ctx, id)
		if lerr == nil && name != "" {
			return name, nil
		}
		if lerr != nil {
			err = lerr
		}
	}
	return "", err
}
