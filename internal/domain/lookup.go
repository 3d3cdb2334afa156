package domain

import "context"

// NameLookup resolves an app ID to a display name. Any error, including
// ErrNameNotFound, means no name is available.
type NameLookup interface {
	LookupName(ctx context.Context, id string) (string, error)
}
