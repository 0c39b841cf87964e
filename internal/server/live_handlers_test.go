package server

import (
	"net/http"
	"testing"
)

func createSession(t *testing.T, s *Server, token, mode string) map[string]any {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/live/sessions", token, map[string]any{"mode": mode})
	if w.Code != http.StatusOK {
		t.Fatalf("Create session failed with %d: %s", w.Code, w.Body.String())
	}
	_, data, _ := decodeEnvelope(t, w)
	return data
}

func TestCreateLiveSession(t *testing.T) {
	s := newTestServer(t, 0)
	token := signupUser(t, s, "PixelMaster", "pixel@example.com")

	data := createSession(t, s, token, "walls")
	if data["username"] != "PixelMaster" || data["mode"] != "walls" {
		t.Errorf("Session identity wrong: %v", data)
	}
	if data["status"] != "playing" || data["viewers"] != float64(0) {
		t.Errorf("Expected a fresh playing session, got %v", data)
	}
	snake, _ := data["snake"].([]any)
	if len(snake) != 3 {
		t.Errorf("Expected a 3-segment starting snake, got %d", len(snake))
	}

	w := doJSON(t, s, http.MethodPost, "/live/sessions", token, map[string]any{"mode": "portal"})
	_, _, msg := decodeEnvelope(t, w)
	if w.Code != http.StatusBadRequest || msg != "Invalid game mode" {
		t.Errorf("Expected mode validation, got %d %q", w.Code, msg)
	}

	w = doJSON(t, s, http.MethodPost, "/live/sessions", "", map[string]any{"mode": "walls"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected create to require auth, got %d", w.Code)
	}
}

func TestCreateSessionReplacesPrevious(t *testing.T) {
	s := newTestServer(t, 0)
	token := signupUser(t, s, "PixelMaster", "pixel@example.com")

	first := createSession(t, s, token, "walls")
	createSession(t, s, token, "pass-through")

	w := doJSON(t, s, http.MethodGet, "/live/players", "", nil)
	_, data, _ := decodeEnvelope(t, w)
	players, _ := data["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("Expected one live session per user, got %d", len(players))
	}
	p, _ := players[0].(map[string]any)
	if p["mode"] != "pass-through" {
		t.Errorf("Expected the newer session to win, got %v", p["mode"])
	}

	w = doJSON(t, s, http.MethodGet, "/live/players/"+first["id"].(string), "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected the replaced session to be gone, got %d", w.Code)
	}
}

func TestUpdateLiveSession(t *testing.T) {
	s := newTestServer(t, 0)
	token := signupUser(t, s, "PixelMaster", "pixel@example.com")
	other := signupUser(t, s, "SnakeKing", "king@example.com")

	session := createSession(t, s, token, "walls")
	id, _ := session["id"].(string)

	body := map[string]any{
		"score": 40,
		"snake": []map[string]int{
			{"x": 11, "y": 10}, {"x": 10, "y": 10}, {"x": 9, "y": 10}, {"x": 8, "y": 10},
		},
		"food":      map[string]int{"x": 3, "y": 3},
		"direction": "RIGHT",
		"status":    "playing",
	}

	w := doJSON(t, s, http.MethodPut, "/live/sessions/"+id, token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Update failed with %d: %s", w.Code, w.Body.String())
	}
	_, data, _ := decodeEnvelope(t, w)
	if data["score"] != float64(40) {
		t.Errorf("Expected score 40 after update, got %v", data["score"])
	}
	snake, _ := data["snake"].([]any)
	if len(snake) != 4 {
		t.Errorf("Expected the grown snake to be stored, got %d segments", len(snake))
	}

	w = doJSON(t, s, http.MethodPut, "/live/sessions/"+id, other, body)
	_, _, msg := decodeEnvelope(t, w)
	if w.Code != http.StatusForbidden || msg != "Not your live session" {
		t.Errorf("Expected owner check, got %d %q", w.Code, msg)
	}

	w = doJSON(t, s, http.MethodPut, "/live/sessions/no-such-id", token, body)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}

	body["score"] = -5
	w = doJSON(t, s, http.MethodPut, "/live/sessions/"+id, token, body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected negative score rejection, got %d", w.Code)
	}
}

func TestEndLiveSession(t *testing.T) {
	s := newTestServer(t, 0)
	token := signupUser(t, s, "PixelMaster", "pixel@example.com")
	other := signupUser(t, s, "SnakeKing", "king@example.com")

	session := createSession(t, s, token, "walls")
	id, _ := session["id"].(string)

	w := doJSON(t, s, http.MethodDelete, "/live/sessions/"+id, other, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected only the owner to end a session, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodDelete, "/live/sessions/"+id, token, nil)
	success, _, _ := decodeEnvelope(t, w)
	if w.Code != http.StatusOK || !success {
		t.Fatalf("Expected the owner to end the session, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/live/players/"+id, "", nil)
	_, _, msg := decodeEnvelope(t, w)
	if w.Code != http.StatusNotFound || msg != "Player not found" {
		t.Errorf("Expected the ended session to 404, got %d %q", w.Code, msg)
	}

	w = doJSON(t, s, http.MethodDelete, "/live/sessions/"+id, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 ending a session twice, got %d", w.Code)
	}
}

func TestLivePlayersListing(t *testing.T) {
	s := newTestServer(t, 0)

	w := doJSON(t, s, http.MethodGet, "/live/players", "", nil)
	_, data, _ := decodeEnvelope(t, w)
	if players, ok := data["players"].([]any); !ok || len(players) != 0 {
		t.Errorf("Expected an empty players array, got %v", data["players"])
	}

	token := signupUser(t, s, "PixelMaster", "pixel@example.com")
	session := createSession(t, s, token, "walls")
	id, _ := session["id"].(string)

	w = doJSON(t, s, http.MethodGet, "/live/players/"+id, "", nil)
	_, data, _ = decodeEnvelope(t, w)
	if data["id"] != id || data["username"] != "PixelMaster" {
		t.Errorf("Expected the stored session back, got %v", data)
	}
	if data["food"] == nil || data["direction"] != "RIGHT" {
		t.Errorf("Expected full game state on the player payload, got %v", data)
	}
}
