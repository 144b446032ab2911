package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

type rentalRepository struct {
	db *DB
}

func NewRentalRepository(db *DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) FindOpenByUser(ctx context.Context, userID int64) (*domain.Rental, error) {
	// Ties on rented_at broken by id so the most recently inserted
	// row wins.
	query := `
		SELECT id, user_id, status, rented_at, returned_at
		FROM rental
		WHERE user_id = ? AND returned_at IS NULL
		ORDER BY rented_at DESC, id DESC
		LIMIT 1
	`
	var rental domain.Rental
	err := r.db.GetContext(ctx, &rental, query, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("open rental for user %d: %w", userID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open rental: %w: %w", repository.ErrStorageUnavailable, err)
	}
	return &rental, nil
}

func (r *rentalRepository) CreateOpen(ctx context.Context, rental *domain.Rental) error {
	// Insert-if-no-open-record in one statement; the partial unique
	// index on rental(user_id) WHERE returned_at IS NULL backs it up
	// should two checkouts for the same user race anyway.
	query := `
		INSERT INTO rental (user_id, status, rented_at, returned_at)
		SELECT ?, ?, ?, NULL
		WHERE NOT EXISTS (
			SELECT 1 FROM rental WHERE user_id = ? AND returned_at IS NULL
		)
	`
	result, err := r.db.ExecContext(ctx, query,
		rental.UserID,
		rental.Status,
		rental.RentedAt,
		rental.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %d: %w", rental.UserID, repository.ErrAlreadyRented)
		}
		return fmt.Errorf("failed to create rental: %w: %w", repository.ErrStorageUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d: %w", rental.UserID, repository.ErrAlreadyRented)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	rental.ID = id

	return nil
}

func (r *rentalRepository) Close(ctx context.Context, rental *domain.Rental) error {
	now := time.Now()

	// Update the exact row the precondition check located, not a
	// re-queried latest row. The returned_at guard makes closing an
	// already-closed rental a no-op failure instead of a second write.
	query := `
		UPDATE rental
		SET status = ?, returned_at = ?
		WHERE id = ? AND returned_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, domain.RentalStatusReturned, now, rental.ID)
	if err != nil {
		return fmt.Errorf("failed to close rental: %w: %w", repository.ErrStorageUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("rental %d: %w", rental.ID, repository.ErrNothingRented)
	}

	rental.Status = domain.RentalStatusReturned
	rental.ReturnedAt = &now

	return nil
}

// isUniqueViolation reports whether err is the sqlite unique
// constraint error (code 2067, or 1555 for primary keys).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: rental.user_id")
}
