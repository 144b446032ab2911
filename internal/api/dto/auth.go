package dto

import "time"

// RegisterRequest represents the member registration request
type RegisterRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Org      string `json:"org"`
}

// UserResponse represents a member. The password hash never leaves
// the storage layer through this type.
type UserResponse struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Org       *string   `json:"org,omitempty"`
	Admin     bool      `json:"admin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorizeRequest represents the authorization request
type AuthorizeRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthorizeResponse represents the authorization response
type AuthorizeResponse struct {
	Code string `json:"code"`
}

// TokenRequest represents the token request
type TokenRequest struct {
	GrantType string `json:"grant_type" binding:"required"` // "authorization_code"
	Code      string `json:"code"`
}

// TokenResponse represents the token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // In seconds
}
