package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	Handle       string    `db:"handle"`
	PasswordHash string    `db:"password_hash"` // bcrypt hashed
	Name         string    `db:"name"`
	Phone        *string   `db:"phone"`
	Org          *string   `db:"org"`
	CreatedAt    time.Time `db:"created_at"`

	// Admin is true only for the synthetic account produced by the
	// configured administrative bypass. It is never persisted.
	Admin bool `db:"-"`
}

func NewUser(handle, hashedPassword, name string, phone, org *string) *User {
	return &User{
		Handle:       handle,
		PasswordHash: hashedPassword,
		Name:         name,
		Phone:        phone,
		Org:          org,
		CreatedAt:    time.Now(),
	}
}
