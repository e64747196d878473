package repository

import "context"

// TagRepository exposes tags as existence/ownership facts for reference
// validation. Tag CRUD itself lives outside this core.
type TagRepository interface {
	// CountOwned reports how many distinct ids from tagIDs exist and belong
	// to userID. The integrity validator compares it against len(tagIDs), so
	// duplicates in the request fail the check.
	CountOwned(ctx context.Context, userID string, tagIDs []string) (int, error)
}
