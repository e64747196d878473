package repository

import (
	"context"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
)

// NoteFilter narrows a note listing. All fields are optional; the owning
// user id is always applied by the repository on top of this filter.
type NoteFilter struct {
	SearchTerm string // case-insensitive substring match over title OR content
	FolderID   string
	TagID      string
}

// NewNote is the normalized document produced by the integrity validator
// for a create.
type NewNote struct {
	Title    string
	Content  string
	FolderID *string // nil = no folder
	TagIDs   []string
}

// NoteChanges is the normalized document for a partial update. Nil pointer
// fields are left unchanged; ClearFolder unsets the folder reference and
// wins over FolderID.
type NoteChanges struct {
	Title       *string
	Content     *string
	FolderID    *string
	ClearFolder bool
	TagIDs      *[]string
}

// NoteRepository persists notes. Every operation is scoped by the owning
// user id; cross-tenant ids behave exactly like missing ids.
type NoteRepository interface {
	List(ctx context.Context, userID string, f NoteFilter) ([]entity.Note, error)
	GetByID(ctx context.Context, userID, id string) (*entity.Note, error)
	Create(ctx context.Context, userID string, n NewNote) (*entity.Note, error)
	Update(ctx context.Context, userID, id string, ch NoteChanges) (*entity.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
