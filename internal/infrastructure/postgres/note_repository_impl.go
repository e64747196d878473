package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
	"github.com/oksasatya/go-notes-api/internal/domain/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// escapeLike neutralizes LIKE wildcards so a search term matches as a
// literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *NoteRepository) List(ctx context.Context, userID string, f repository.NoteFilter) ([]entity.Note, error) {
	// Build the WHERE clause incrementally from the optional filters,
	// always scoped by the owning user id.
	conds := []string{"n.user_id = $1"}
	args := []any{userID}

	if f.SearchTerm != "" {
		args = append(args, "%"+escapeLike(f.SearchTerm)+"%")
		p := len(args)
		conds = append(conds, fmt.Sprintf(`(n.title ILIKE $%d ESCAPE '\' OR n.content ILIKE $%d ESCAPE '\')`, p, p))
	}
	if f.FolderID != "" {
		args = append(args, f.FolderID)
		conds = append(conds, fmt.Sprintf("n.folder_id = $%d", len(args)))
	}
	if f.TagID != "" {
		args = append(args, f.TagID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = n.id AND nt.tag_id = $%d)", len(args)))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT n.id, n.user_id, n.title, n.content, n.folder_id, n.created_at, n.updated_at
		FROM notes n
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY n.updated_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]entity.Note, 0)
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.FolderID,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Tags = []entity.Tag{}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, userID, id string) (*entity.Note, error) {
	n := &entity.Note{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, content, folder_id, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.FolderID,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	notes := []entity.Note{*n}
	notes[0].Tags = []entity.Tag{}
	if err := r.attachTags(ctx, notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

func (r *NoteRepository) Create(ctx context.Context, userID string, doc repository.NewNote) (*entity.Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n := &entity.Note{UserID: userID, Title: doc.Title, Content: doc.Content, FolderID: doc.FolderID}
	row := tx.QueryRow(ctx, `
		INSERT INTO notes (user_id, title, content, folder_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, userID, doc.Title, doc.Content, doc.FolderID)
	if err := row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	if err := replaceNoteTags(ctx, tx, n.ID, doc.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	notes := []entity.Note{*n}
	notes[0].Tags = []entity.Tag{}
	if err := r.attachTags(ctx, notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

func (r *NoteRepository) Update(ctx context.Context, userID, id string, ch repository.NoteChanges) (*entity.Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	set := []string{"updated_at = now()"}
	args := []any{}
	if ch.Title != nil {
		args = append(args, *ch.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if ch.Content != nil {
		args = append(args, *ch.Content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	switch {
	case ch.ClearFolder:
		set = append(set, "folder_id = NULL")
	case ch.FolderID != nil:
		args = append(args, *ch.FolderID)
		set = append(set, fmt.Sprintf("folder_id = $%d", len(args)))
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE notes SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, title, content, folder_id, created_at, updated_at
	`, strings.Join(set, ", "), len(args)-1, len(args))

	n := &entity.Note{}
	row := tx.QueryRow(ctx, query, args...)
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.FolderID,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if ch.TagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, n.ID); err != nil {
			return nil, err
		}
		if err := replaceNoteTags(ctx, tx, n.ID, *ch.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	notes := []entity.Note{*n}
	notes[0].Tags = []entity.Tag{}
	if err := r.attachTags(ctx, notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

// Delete is idempotent: removing an absent or foreign note is not an error.
func (r *NoteRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func replaceNoteTags(ctx context.Context, tx pgx.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO note_tags (note_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, noteID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// attachTags resolves tag references for the given notes in one query.
func (r *NoteRepository) attachTags(ctx context.Context, notes []entity.Note) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(notes))
	byID := make(map[string]*entity.Note, len(notes))
	for i := range notes {
		ids = append(ids, notes[i].ID)
		byID[notes[i].ID] = &notes[i]
	}

	rows, err := r.pool.Query(ctx, `
		SELECT nt.note_id, t.id, t.user_id, t.name, t.created_at, t.updated_at
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id = ANY($1::uuid[])
		ORDER BY t.name
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		var t entity.Tag
		if err := rows.Scan(&noteID, &t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		if n, ok := byID[noteID]; ok {
			n.Tags = append(n.Tags, t)
		}
	}
	return rows.Err()
}

var _ repository.NoteRepository = (*NoteRepository)(nil)
