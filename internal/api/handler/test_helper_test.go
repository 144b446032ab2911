package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jihun/brolly/internal/api/dto"
	"github.com/jihun/brolly/internal/api/middleware"
	"github.com/jihun/brolly/internal/core/service"
	"github.com/jihun/brolly/internal/infrastructure/sqlite"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminHandle   = "keeper"
	testAdminPassword = "keeper-pw-123"
)

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
}

// setupTestEnv creates a test environment with a throwaway SQLite
// database and the real auth middleware on the protected routes.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adminHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}

	// Create repositories
	userRepo := sqlite.NewUserRepository(db)
	rentalRepo := sqlite.NewRentalRepository(db)
	authCodeRepo := sqlite.NewAuthCodeRepository(db)
	exportRepo := sqlite.NewExportRepository(db)

	// Create services
	admin := service.AdminCredentials{Handle: testAdminHandle, PasswordHash: string(adminHash)}
	authService := service.NewAuthService(userRepo, authCodeRepo, admin, "test-secret", "HS256")
	rentalService := service.NewRentalService(rentalRepo)

	// Create handlers
	authHandler := NewAuthHandler(authService)
	rentalHandler := NewRentalHandler(rentalService)
	memberHandler := NewMemberHandler(userRepo)
	exportHandler := NewExportHandler(exportRepo)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authMiddleware := middleware.AuthMiddleware(authService)

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/authorize", authHandler.Authorize)
	router.POST("/auth/token", authHandler.Token)
	router.GET("/members/me", authMiddleware, memberHandler.Me)
	router.GET("/rental", authMiddleware, rentalHandler.GetCurrent)
	router.POST("/rental/checkout", authMiddleware, rentalHandler.Checkout)
	router.POST("/rental/return", authMiddleware, rentalHandler.Return)
	router.GET("/export", authMiddleware, middleware.AdminMiddleware(), exportHandler.Export)

	return &testEnv{
		db:     db,
		router: router,
	}
}

// request performs a JSON request and returns the response
func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register creates a member over HTTP and fails the test on error
func (env *testEnv) register(t *testing.T, handle, password, name string) dto.UserResponse {
	t.Helper()

	w := env.request(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Handle:   handle,
		Password: password,
		Name:     name,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse register response: %v", err)
	}
	return resp
}

// login runs the full authorize + token exchange and returns a JWT
func (env *testEnv) login(t *testing.T, handle, password string) string {
	t.Helper()

	w := env.request(t, http.MethodPost, "/auth/authorize", "", dto.AuthorizeRequest{
		Handle:   handle,
		Password: password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("authorize failed with status %d: %s", w.Code, w.Body.String())
	}

	var authResp dto.AuthorizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &authResp); err != nil {
		t.Fatalf("failed to parse authorize response: %v", err)
	}

	w = env.request(t, http.MethodPost, "/auth/token", "", dto.TokenRequest{
		GrantType: "authorization_code",
		Code:      authResp.Code,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("token exchange failed with status %d: %s", w.Code, w.Body.String())
	}

	var tokenResp dto.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tokenResp); err != nil {
		t.Fatalf("failed to parse token response: %v", err)
	}
	return tokenResp.AccessToken
}

// parseRentalResponse parses the response body into RentalResponse
func parseRentalResponse(t *testing.T, w *httptest.ResponseRecorder) dto.RentalResponse {
	t.Helper()

	var resp dto.RentalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
