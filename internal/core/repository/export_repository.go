package repository

import (
	"context"

	"github.com/jihun/brolly/internal/core/domain"
)

type ExportRepository interface {
	// Snapshot reads users and rentals inside one read transaction so
	// the administrative backup sees both relations at the same point
	// in time.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}
