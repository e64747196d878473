package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-notes-api/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// CountOwned counts distinct owned tags among tagIDs, so duplicate ids in
// the request come up short against len(tagIDs).
func (r *TagRepository) CountOwned(ctx context.Context, userID string, tagIDs []string) (int, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}
	var count int
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT id) FROM tags WHERE id = ANY($1::uuid[]) AND user_id = $2
	`, tagIDs, userID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ repository.TagRepository = (*TagRepository)(nil)
