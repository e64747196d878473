package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-notes-api/internal/domain/repository"
)

type FolderRepository struct {
	pool *pgxpool.Pool
}

func NewFolderRepository(pool *pgxpool.Pool) *FolderRepository {
	return &FolderRepository{pool: pool}
}

func (r *FolderRepository) CountOwned(ctx context.Context, userID, folderID string) (int, error) {
	var count int
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM folders WHERE id = $1 AND user_id = $2
	`, folderID, userID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ repository.FolderRepository = (*FolderRepository)(nil)
