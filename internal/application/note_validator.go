package application

import (
	"context"

	repo "github.com/oksasatya/go-notes-api/internal/domain/repository"
)

// The integrity validator checks a proposed mutation in a fixed order:
// title shape, folderId syntax, tags syntax, tag ownership count, folder
// ownership count. The first failing check wins; no aggregation. Ownership
// is re-verified against the store on every mutation, never assumed from
// prior state.

func (s *NoteService) validateCreate(ctx context.Context, userID string, p NotePayload) (repo.NewNote, error) {
	if p.Title == nil || *p.Title == "" {
		return repo.NewNote{}, invalid("Missing `title` in request body")
	}
	if err := s.checkReferences(ctx, userID, p); err != nil {
		return repo.NewNote{}, err
	}

	doc := repo.NewNote{Title: *p.Title, TagIDs: []string{}}
	if p.Content != nil {
		doc.Content = *p.Content
	}
	// An empty folderId is stripped entirely, never stored as "".
	if p.FolderID != nil && *p.FolderID != "" {
		doc.FolderID = p.FolderID
	}
	if p.Tags != nil {
		doc.TagIDs = *p.Tags
	}
	return doc, nil
}

func (s *NoteService) validateUpdate(ctx context.Context, userID string, p NotePayload) (repo.NoteChanges, error) {
	// An absent title means "no change"; an explicit empty one is rejected.
	if p.Title != nil && *p.Title == "" {
		return repo.NoteChanges{}, invalid("Missing `title` in request body")
	}
	if err := s.checkReferences(ctx, userID, p); err != nil {
		return repo.NoteChanges{}, err
	}

	ch := repo.NoteChanges{Title: p.Title, Content: p.Content, TagIDs: p.Tags}
	if p.FolderID != nil {
		if *p.FolderID == "" {
			ch.ClearFolder = true
		} else {
			ch.FolderID = p.FolderID
		}
	}
	return ch, nil
}

func (s *NoteService) checkReferences(ctx context.Context, userID string, p NotePayload) error {
	hasFolder := p.FolderID != nil && *p.FolderID != ""

	if hasFolder && !isValidID(*p.FolderID) {
		return invalid("The `folderId` is not valid")
	}
	if p.Tags != nil {
		for _, id := range *p.Tags {
			if !isValidID(id) {
				return invalid("The `tags` array contains an invalid `id`")
			}
		}
	}

	// Tags are checked against the store before the folder. The count must
	// equal the requested length, so duplicate ids fail the check.
	if p.Tags != nil && len(*p.Tags) > 0 {
		count, err := s.Tags.CountOwned(ctx, userID, *p.Tags)
		if err != nil {
			return err
		}
		if count != len(*p.Tags) {
			return invalid("The tags array contains an invalid id!")
		}
	}

	if hasFolder {
		count, err := s.Folders.CountOwned(ctx, userID, *p.FolderID)
		if err != nil {
			return err
		}
		if count != 1 {
			return invalid("The folderId is not valid!")
		}
	}
	return nil
}
