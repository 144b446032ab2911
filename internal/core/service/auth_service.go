package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	AuthCodeExpirationMinutes = 10
	TokenExpirationHours      = 1
	BcryptCost                = 10
)

var (
	// ErrBadPassword is returned when the handle exists but the
	// password does not verify against the stored hash.
	ErrBadPassword = errors.New("password does not match")

	// ErrMissingField is returned when handle, password or name are
	// empty after trimming.
	ErrMissingField = errors.New("handle, password and name are required")
)

// AdminCredentials is the out-of-band administrative bypass pair. The
// hash is a bcrypt hash of the admin password, injected via config so
// it can be rotated without a code change. An empty handle disables
// the bypass.
type AdminCredentials struct {
	Handle       string
	PasswordHash string
}

type AuthService struct {
	userRepo     repository.UserRepository
	authCodeRepo repository.AuthCodeRepository
	admin        AdminCredentials
	jwtSecret    string
	jwtAlgorithm string
}

func NewAuthService(
	userRepo repository.UserRepository,
	authCodeRepo repository.AuthCodeRepository,
	admin AdminCredentials,
	jwtSecret string,
	jwtAlgorithm string,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		authCodeRepo: authCodeRepo,
		admin:        admin,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new member. Handle, password and name are
// required after trimming; phone and org stay optional. The insert is
// atomic on the handle, so the loser of a duplicate registration gets
// repository.ErrDuplicateHandle and no partial row.
func (s *AuthService) Register(ctx context.Context, handle, password, name, phone, org string) (*domain.User, error) {
	handle = strings.TrimSpace(handle)
	name = strings.TrimSpace(name)
	if handle == "" || strings.TrimSpace(password) == "" || name == "" {
		return nil, ErrMissingField
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(handle, hash, name, optional(phone), optional(org))
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a handle/password pair. The configured
// administrative bypass is checked first and never falls through to a
// table lookup; a matching pair yields a synthetic record flagged as
// administrative.
func (s *AuthService) Authenticate(ctx context.Context, handle, password string) (*domain.User, error) {
	if s.admin.Handle != "" && handle == s.admin.Handle {
		if !s.VerifyPassword(password, s.admin.PasswordHash) {
			return nil, ErrBadPassword
		}
		return &domain.User{
			Handle: s.admin.Handle,
			Name:   "Administrator",
			Admin:  true,
		}, nil
	}

	user, err := s.userRepo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrBadPassword
	}

	return user, nil
}

// Authorize authenticates a member and returns a single-use auth code
func (s *AuthService) Authorize(ctx context.Context, handle, password string) (*domain.AuthCode, error) {
	user, err := s.Authenticate(ctx, handle, password)
	if err != nil {
		return nil, err
	}

	authCode := domain.NewAuthCode(user, AuthCodeExpirationMinutes)
	if err := s.authCodeRepo.Create(ctx, authCode); err != nil {
		return nil, fmt.Errorf("failed to create auth code: %w", err)
	}

	// Clean up expired codes
	_ = s.authCodeRepo.DeleteExpired(ctx)

	return authCode, nil
}

// ExchangeAuthCode exchanges an auth code for a JWT token
func (s *AuthService) ExchangeAuthCode(ctx context.Context, code string) (string, error) {
	authCode, err := s.authCodeRepo.FindByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("invalid auth code")
	}

	if authCode.IsExpired() {
		_ = s.authCodeRepo.Delete(ctx, code)
		return "", fmt.Errorf("auth code expired")
	}

	token, err := s.generateJWT(authCode)
	if err != nil {
		return "", err
	}

	// Delete auth code (single use)
	_ = s.authCodeRepo.Delete(ctx, code)

	return token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

func (s *AuthService) generateJWT(authCode *domain.AuthCode) (string, error) {
	now := time.Now()
	expiresAt := now.Add(TokenExpirationHours * time.Hour)

	claims := TokenClaims{
		Subject: authCode.Handle,
		UserID:  authCode.UserID,
		Admin:   authCode.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "brolly",
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	Subject string `json:"sub"`
	UserID  int64  `json:"uid"`
	Admin   bool   `json:"admin"`
	jwt.RegisteredClaims
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
