package dto

import "time"

// ExportUser is a user row in the administrative export. Password
// hashes are deliberately absent.
type ExportUser struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Org       *string   `json:"org,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportResponse is a point-in-time copy of both relations
type ExportResponse struct {
	TakenAt time.Time        `json:"taken_at"`
	Users   []ExportUser     `json:"users"`
	Rentals []RentalResponse `json:"rentals"`
}
