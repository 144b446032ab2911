package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	// Conditional insert rather than check-then-insert: two concurrent
	// registrations of the same handle resolve inside this statement.
	query := `
		INSERT INTO user (handle, password_hash, name, phone, org, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(handle) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Handle,
		user.PasswordHash,
		user.Name,
		NullString(user.Phone),
		NullString(user.Org),
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w: %w", repository.ErrStorageUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("handle %q: %w", user.Handle, repository.ErrDuplicateHandle)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	user.ID = id

	return nil
}

func (r *userRepository) FindByHandle(ctx context.Context, handle string) (*domain.User, error) {
	query := `
		SELECT id, handle, password_hash, name, phone, org, created_at
		FROM user
		WHERE handle = ?
	`
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, handle)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("handle %q: %w", handle, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w: %w", repository.ErrStorageUnavailable, err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, handle, password_hash, name, phone, org, created_at
		FROM user
		ORDER BY handle
	`
	var users []*domain.User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w: %w", repository.ErrStorageUnavailable, err)
	}
	return users, nil
}
