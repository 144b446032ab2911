package service

import (
	"context"
	"errors"
	"time"

	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

// RentalService tracks checkout and return of the shared umbrella.
// Per user the derived status is AVAILABLE (no open record) or RENTED
// (one open record); history rows are never deleted.
type RentalService struct {
	rentalRepo repository.RentalRepository
}

func NewRentalService(rentalRepo repository.RentalRepository) *RentalService {
	return &RentalService{rentalRepo: rentalRepo}
}

// CurrentRental returns the user's open rental, or
// repository.ErrNothingRented when nothing is checked out.
func (s *RentalService) CurrentRental(ctx context.Context, userID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.FindOpenByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, repository.ErrNothingRented
	}
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// Checkout opens a rental for the user. The storage layer makes the
// no-open-record check and the insert one atomic statement, so two
// concurrent checkouts for the same user yield exactly one open row
// and one repository.ErrAlreadyRented.
func (s *RentalService) Checkout(ctx context.Context, userID int64) (*domain.Rental, error) {
	rental := &domain.Rental{
		UserID:   userID,
		Status:   domain.RentalStatusRented,
		RentedAt: time.Now(),
	}
	if err := s.rentalRepo.CreateOpen(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// Return closes the user's open rental, stamping returned_at on the
// exact row the precondition check found. With no open rental it fails
// repository.ErrNothingRented and writes nothing.
func (s *RentalService) Return(ctx context.Context, userID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.FindOpenByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, repository.ErrNothingRented
	}
	if err != nil {
		return nil, err
	}

	if err := s.rentalRepo.Close(ctx, rental); err != nil {
		return nil, err
	}

	return rental, nil
}
