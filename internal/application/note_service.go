package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
	repo "github.com/oksasatya/go-notes-api/internal/domain/repository"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
)

// NotePayload is a proposed note mutation as received from the client.
// Pointer fields distinguish "absent" (leave unchanged on update) from an
// explicitly provided value; folderId "" means "clear the folder".
type NotePayload struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	FolderID *string   `json:"folderId"`
	Tags     *[]string `json:"tags"`
}

// NoteService runs the integrity validator and performs note mutations,
// every operation scoped by the acting user's id. A redis client, when
// present, caches single-note lookups.
type NoteService struct {
	Notes    repo.NoteRepository
	Folders  repo.FolderRepository
	Tags     repo.TagRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewNoteService(notes repo.NoteRepository, folders repo.FolderRepository, tags repo.TagRepository,
	rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *NoteService {
	return &NoteService{Notes: notes, Folders: folders, Tags: tags, Redis: rdb, CacheTTL: cacheTTL, Logger: logger}
}

func isValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// List returns the user's notes matching the optional filters, newest
// update first, with tag references resolved.
func (s *NoteService) List(ctx context.Context, userID string, f repo.NoteFilter) ([]entity.Note, error) {
	if f.FolderID != "" && !isValidID(f.FolderID) {
		return nil, invalid("The `folderId` is not valid")
	}
	if f.TagID != "" && !isValidID(f.TagID) {
		return nil, invalid("The `tagId` is not valid")
	}
	return s.Notes.List(ctx, userID, f)
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*entity.Note, error) {
	if !isValidID(id) {
		return nil, invalid("The `id` is not valid")
	}

	if s.Redis != nil {
		var cached entity.Note
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, helpers.NoteCacheKey(userID, id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	n, err := s.Notes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.cacheNote(ctx, userID, n)
	return n, nil
}

func (s *NoteService) Create(ctx context.Context, userID string, p NotePayload) (*entity.Note, error) {
	doc, err := s.validateCreate(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.Notes.Create(ctx, userID, doc)
}

func (s *NoteService) Update(ctx context.Context, userID, id string, p NotePayload) (*entity.Note, error) {
	if !isValidID(id) {
		return nil, invalid("The `id` is not valid")
	}
	ch, err := s.validateUpdate(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	n, err := s.Notes.Update(ctx, userID, id, ch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.dropCachedNote(ctx, userID, id)
	return n, nil
}

// Delete removes the note if it exists and is owned by userID. The caller
// cannot tell "deleted" from "already absent".
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if !isValidID(id) {
		return invalid("The `id` is not valid")
	}
	if err := s.Notes.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.dropCachedNote(ctx, userID, id)
	return nil
}

func (s *NoteService) cacheNote(ctx context.Context, userID string, n *entity.Note) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.NoteCacheKey(userID, n.ID), n, s.CacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("note_id", n.ID).Warn("note cache write failed")
	}
}

func (s *NoteService) dropCachedNote(ctx context.Context, userID, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.NoteCacheKey(userID, id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("note_id", id).Warn("note cache invalidation failed")
	}
}
