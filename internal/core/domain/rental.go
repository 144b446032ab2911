package domain

import "time"

type RentalStatus string

const (
	RentalStatusRented   RentalStatus = "RENTED"
	RentalStatusReturned RentalStatus = "RETURNED"
)

// Rental is one row of the append-only lending history. A rental is
// open while ReturnedAt is nil; a user has at most one open rental.
type Rental struct {
	ID         int64        `db:"id"`
	UserID     int64        `db:"user_id"`
	Status     RentalStatus `db:"status"`
	RentedAt   time.Time    `db:"rented_at"`
	ReturnedAt *time.Time   `db:"returned_at"`
}

func (r *Rental) IsOpen() bool {
	return r.ReturnedAt == nil
}
