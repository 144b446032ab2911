package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

type exportRepository struct {
	db *DB
}

func NewExportRepository(db *DB) repository.ExportRepository {
	return &exportRepository{db: db}
}

func (r *exportRepository) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	// Both relations are read inside one transaction so the backup is
	// a single point in time even while rentals are being written.
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w: %w", repository.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	snapshot := &domain.Snapshot{TakenAt: time.Now()}

	err = tx.SelectContext(ctx, &snapshot.Users, `
		SELECT id, handle, password_hash, name, phone, org, created_at
		FROM user
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w: %w", repository.ErrStorageUnavailable, err)
	}

	err = tx.SelectContext(ctx, &snapshot.Rentals, `
		SELECT id, user_id, status, rented_at, returned_at
		FROM rental
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read rentals: %w: %w", repository.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finish snapshot: %w", err)
	}

	return snapshot, nil
}
