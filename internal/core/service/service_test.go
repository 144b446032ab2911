package service_test

import (
	"path/filepath"
	"testing"

	"github.com/jihun/brolly/internal/core/repository"
	"github.com/jihun/brolly/internal/core/service"
	"github.com/jihun/brolly/internal/infrastructure/sqlite"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret   = "test-secret"
	testAdminHandle = "keeper"
	testAdminPass   = "keeper-pw-123"
)

type testEnv struct {
	db            *sqlite.DB
	userRepo      repository.UserRepository
	rentalRepo    repository.RentalRepository
	authCodeRepo  repository.AuthCodeRepository
	authService   *service.AuthService
	rentalService *service.RentalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adminHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	rentalRepo := sqlite.NewRentalRepository(db)
	authCodeRepo := sqlite.NewAuthCodeRepository(db)

	admin := service.AdminCredentials{
		Handle:       testAdminHandle,
		PasswordHash: string(adminHash),
	}

	return &testEnv{
		db:            db,
		userRepo:      userRepo,
		rentalRepo:    rentalRepo,
		authCodeRepo:  authCodeRepo,
		authService:   service.NewAuthService(userRepo, authCodeRepo, admin, testJWTSecret, "HS256"),
		rentalService: service.NewRentalService(rentalRepo),
	}
}
