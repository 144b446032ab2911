package repository

import (
	"context"

	"github.com/jihun/brolly/internal/core/domain"
)

type RentalRepository interface {
	// FindOpenByUser returns the user's open rental (returned_at is
	// null), most recent first when history contains several rows.
	// Fails with ErrNotFound when the user has nothing checked out.
	FindOpenByUser(ctx context.Context, userID int64) (*domain.Rental, error)

	// CreateOpen inserts a new open rental if and only if the user has
	// no open rental; otherwise it fails with ErrAlreadyRented and
	// writes nothing. The check and the insert are a single statement.
	CreateOpen(ctx context.Context, rental *domain.Rental) error

	// Close marks exactly the given open rental as returned. Fails
	// with ErrNothingRented when that row was already closed.
	Close(ctx context.Context, rental *domain.Rental) error
}
