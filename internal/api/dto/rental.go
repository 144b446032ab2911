package dto

import "time"

// RentalResponse represents one row of the lending history
type RentalResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Status     string     `json:"status"`
	RentedAt   time.Time  `json:"rented_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}
