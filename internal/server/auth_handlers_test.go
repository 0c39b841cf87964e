package server

import (
	"net/http"
	"testing"
)

func TestSignupReturnsAccountAndToken(t *testing.T) {
	s := newTestServer(t, 0)

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": "PixelMaster",
		"email":    "pixel@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	success, data, _ := decodeEnvelope(t, w)
	if !success {
		t.Fatal("Expected a success envelope")
	}
	if data["username"] != "PixelMaster" || data["email"] != "pixel@example.com" {
		t.Errorf("Account fields wrong: %v", data)
	}
	if data["id"] == "" || data["id"] == nil {
		t.Error("Expected a generated user id")
	}
	if data["avatar"] != nil {
		t.Errorf("Expected a null avatar for new accounts, got %v", data["avatar"])
	}
	if data["created_at"] == nil {
		t.Error("Expected created_at on the account payload")
	}
	if data["token_type"] != "bearer" {
		t.Errorf("Expected bearer token type, got %v", data["token_type"])
	}
	if tok, _ := data["access_token"].(string); tok == "" {
		t.Error("Expected an access token")
	}
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t, 0)

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": "", "email": "", "password": "",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank fields, got %d", w.Code)
	}
}

func TestSignupDuplicates(t *testing.T) {
	s := newTestServer(t, 0)
	signupUser(t, s, "PixelMaster", "pixel@example.com")

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": "SomeoneElse",
		"email":    "pixel@example.com",
		"password": "password123",
	})
	success, _, msg := decodeEnvelope(t, w)
	if w.Code != http.StatusBadRequest || success {
		t.Errorf("Expected 400 failure for duplicate email, got %d", w.Code)
	}
	if msg != "Email already registered" {
		t.Errorf("Expected email error message, got %q", msg)
	}

	w = doJSON(t, s, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": "PixelMaster",
		"email":    "other@example.com",
		"password": "password123",
	})
	_, _, msg = decodeEnvelope(t, w)
	if w.Code != http.StatusBadRequest || msg != "Username already taken" {
		t.Errorf("Expected username error, got %d %q", w.Code, msg)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, 0)
	signupUser(t, s, "PixelMaster", "pixel@example.com")

	w := doJSON(t, s, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "pixel@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	_, data, _ := decodeEnvelope(t, w)
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("Expected an access token from login")
	}

	w = doJSON(t, s, http.MethodGet, "/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected the login token to authenticate /auth/me, got %d", w.Code)
	}
	_, data, _ = decodeEnvelope(t, w)
	if data["username"] != "PixelMaster" {
		t.Errorf("Expected PixelMaster from /auth/me, got %v", data["username"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t, 0)
	signupUser(t, s, "PixelMaster", "pixel@example.com")

	cases := []map[string]any{
		{"email": "pixel@example.com", "password": "wrongpassword"},
		{"email": "nobody@example.com", "password": "password123"},
	}
	for _, body := range cases {
		w := doJSON(t, s, http.MethodPost, "/auth/login", "", body)
		_, _, msg := decodeEnvelope(t, w)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %v, got %d", body["email"], w.Code)
		}
		if msg != "Invalid email or password" {
			t.Errorf("Expected uniform credential error, got %q", msg)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, 0)

	w := doJSON(t, s, http.MethodGet, "/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/auth/me", "not-a-real-token", nil)
	_, _, msg := decodeEnvelope(t, w)
	if w.Code != http.StatusUnauthorized || msg != "Invalid token" {
		t.Errorf("Expected 401 Invalid token, got %d %q", w.Code, msg)
	}
}

func TestLogout(t *testing.T) {
	s := newTestServer(t, 0)
	token := signupUser(t, s, "PixelMaster", "pixel@example.com")

	w := doJSON(t, s, http.MethodPost, "/auth/logout", token, nil)
	success, data, _ := decodeEnvelope(t, w)
	if w.Code != http.StatusOK || !success {
		t.Errorf("Expected a successful logout, got %d", w.Code)
	}
	if data != nil {
		t.Errorf("Expected null data from logout, got %v", data)
	}

	w = doJSON(t, s, http.MethodPost, "/auth/logout", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected logout to require a token, got %d", w.Code)
	}
}
