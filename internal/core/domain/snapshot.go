package domain

import "time"

// Snapshot is a consistent point-in-time copy of both relations, read
// inside a single transaction. Used for administrative backup only.
type Snapshot struct {
	TakenAt time.Time
	Users   []*User
	Rentals []*Rental
}
