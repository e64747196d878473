package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a scoped lookup matches no row. Existence
	// and ownership are intentionally conflated: a row owned by another user
	// yields the same error as a missing row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when a username uniqueness constraint
	// is violated on user creation.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository is the credential store: it owns user records and their
// password digests.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
