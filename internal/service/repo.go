package service

import (
	"context"

	"github.com/mkandie/acquisitions/internal/domain/user"
)

// UserRepo is the store contract the services depend on. Implemented by
// repo/postgres (durable), repo/memory (tests) and repo/rediscache
// (caching decorator). Absence is signalled with user.ErrNotFound, email
// collisions with user.ErrEmailTaken; anything else is unexpected.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByID(ctx context.Context, id int) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Insert(ctx context.Context, nu user.NewUser) (user.User, error)
	Update(ctx context.Context, id int, patch user.Patch) (user.User, error)
	Delete(ctx context.Context, id int) error
}
