package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuthCode struct {
	Code      string    `db:"code"`
	Handle    string    `db:"handle"`
	UserID    int64     `db:"user_id"`
	Admin     bool      `db:"admin"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func NewAuthCode(user *User, expirationMinutes int) *AuthCode {
	now := time.Now()
	return &AuthCode{
		Code:      uuid.New().String(),
		Handle:    user.Handle,
		UserID:    user.ID,
		Admin:     user.Admin,
		ExpiresAt: now.Add(time.Duration(expirationMinutes) * time.Minute),
		CreatedAt: now,
	}
}

func (a *AuthCode) IsExpired() bool {
	return time.Now().After(a.ExpiresAt)
}
