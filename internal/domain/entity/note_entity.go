package entity

import "time"

// Note belongs to exactly one user. FolderID and Tags are non-owning
// references to entities owned by the same user; that invariant is enforced
// on every create and update, never assumed from prior state.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FolderID  *string   `json:"folderId,omitempty"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
