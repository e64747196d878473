package repository

import "context"

// FolderRepository exposes folders as existence/ownership facts for
// reference validation. Folder CRUD itself lives outside this core.
type FolderRepository interface {
	// CountOwned reports how many of the given folder ids exist and belong
	// to userID. The integrity validator compares it against 1.
	CountOwned(ctx context.Context, userID, folderID string) (int, error)
}
