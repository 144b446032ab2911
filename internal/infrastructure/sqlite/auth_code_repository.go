package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

type authCodeRepository struct {
	db *DB
}

func NewAuthCodeRepository(db *DB) repository.AuthCodeRepository {
	return &authCodeRepository{db: db}
}

func (r *authCodeRepository) Create(ctx context.Context, authCode *domain.AuthCode) error {
	query := `
		INSERT INTO auth_code (code, handle, user_id, admin, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		authCode.Code,
		authCode.Handle,
		authCode.UserID,
		authCode.Admin,
		authCode.ExpiresAt,
		authCode.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth code: %w", err)
	}
	return nil
}

func (r *authCodeRepository) FindByCode(ctx context.Context, code string) (*domain.AuthCode, error) {
	query := `
		SELECT code, handle, user_id, admin, expires_at, created_at
		FROM auth_code
		WHERE code = ?
	`
	var authCode domain.AuthCode
	err := r.db.GetContext(ctx, &authCode, query, code)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find auth code: %w", err)
	}
	return &authCode, nil
}

func (r *authCodeRepository) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM auth_code WHERE code = ?`
	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to delete auth code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *authCodeRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM auth_code WHERE expires_at < ?`
	_, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired auth codes: %w", err)
	}
	return nil
}
