package repository

import (
	"context"

	"github.com/jihun/brolly/internal/core/domain"
)

type UserRepository interface {
	// Create inserts the user atomically. It fails with
	// ErrDuplicateHandle when the handle is already taken, leaving the
	// store unchanged.
	Create(ctx context.Context, user *domain.User) error
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
