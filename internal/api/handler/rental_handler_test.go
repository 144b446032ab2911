package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jihun/brolly/internal/api/dto"
)

func TestRentalLifecycleOverHTTP(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "pw1", "Alice")
	token := env.login(t, "alice", "pw1")

	// Nothing checked out yet
	if w := env.request(t, http.MethodGet, "/rental", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 before checkout, got %d", w.Code)
	}

	// Checkout
	w := env.request(t, http.MethodPost, "/rental/checkout", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d: %s", w.Code, w.Body.String())
	}
	rented := parseRentalResponse(t, w)
	if rented.Status != "RENTED" || rented.ReturnedAt != nil {
		t.Errorf("unexpected checkout response: %+v", rented)
	}

	// Current rental reflects it
	w = env.request(t, http.MethodGet, "/rental", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if current := parseRentalResponse(t, w); current.ID != rented.ID {
		t.Errorf("expected current rental %d, got %d", rented.ID, current.ID)
	}

	// Second checkout is refused
	if w := env.request(t, http.MethodPost, "/rental/checkout", token, nil); w.Code != http.StatusConflict {
		t.Errorf("expected 409 on double checkout, got %d", w.Code)
	}

	// Return
	w = env.request(t, http.MethodPost, "/rental/return", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("return failed: %d: %s", w.Code, w.Body.String())
	}
	returned := parseRentalResponse(t, w)
	if returned.ID != rented.ID || returned.Status != "RETURNED" || returned.ReturnedAt == nil {
		t.Errorf("unexpected return response: %+v", returned)
	}

	// Back to nothing checked out, and a fresh checkout opens a new row
	if w := env.request(t, http.MethodGet, "/rental", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after return, got %d", w.Code)
	}
	w = env.request(t, http.MethodPost, "/rental/checkout", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("re-checkout failed: %d", w.Code)
	}
	if again := parseRentalResponse(t, w); again.ID == rented.ID {
		t.Error("expected a new rental record after return")
	}
}

func TestReturnWithoutCheckoutOverHTTP(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "pw1", "Alice")
	token := env.login(t, "alice", "pw1")

	w := env.request(t, http.MethodPost, "/rental/return", token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestRentalRequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/rental", "/rental/checkout", "/rental/return"} {
		method := http.MethodPost
		if path == "/rental" {
			method = http.MethodGet
		}
		if w := env.request(t, method, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, w.Code)
		}
	}
}

func TestAdminCannotRent(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, testAdminHandle, testAdminPassword)

	if w := env.request(t, http.MethodPost, "/rental/checkout", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for administrative checkout, got %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice", "pw1", "Alice")
	aliceToken := env.login(t, "alice", "pw1")

	if w := env.request(t, http.MethodPost, "/rental/checkout", aliceToken, nil); w.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d", w.Code)
	}

	// Members cannot export
	if w := env.request(t, http.MethodGet, "/export", aliceToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for member export, got %d", w.Code)
	}

	adminToken := env.login(t, testAdminHandle, testAdminPassword)
	w := env.request(t, http.MethodGet, "/export", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export failed: %d: %s", w.Code, w.Body.String())
	}

	var resp dto.ExportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse export response: %v", err)
	}
	if len(resp.Users) != 1 || len(resp.Rentals) != 1 {
		t.Errorf("expected 1 user and 1 rental, got %d/%d", len(resp.Users), len(resp.Rentals))
	}
	if resp.Rentals[0].Status != "RENTED" {
		t.Errorf("unexpected rental in export: %+v", resp.Rentals[0])
	}
}
