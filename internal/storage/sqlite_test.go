package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkrivenko/snake-arena/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestCreateAndLookupUser(t *testing.T) {
	store := openTestStore(t)

	user, err := store.CreateUser("PixelMaster", "pixel@example.com", "hash1", "")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected a generated user ID")
	}

	byID, err := store.UserByID(user.ID)
	if err != nil {
		t.Fatalf("UserByID() failed: %v", err)
	}
	if byID == nil || byID.Username != "PixelMaster" {
		t.Errorf("Expected to find PixelMaster by ID, got %+v", byID)
	}

	byEmail, err := store.UserByEmail("pixel@example.com")
	if err != nil {
		t.Fatalf("UserByEmail() failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("Expected to find the user by email, got %+v", byEmail)
	}
	if byEmail.PasswordHash != "hash1" {
		t.Errorf("Expected stored password hash, got %q", byEmail.PasswordHash)
	}

	// Missing users come back nil without an error
	missing, err := store.UserByID("nope")
	if err != nil {
		t.Fatalf("UserByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for a missing user, got %+v", missing)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.CreateUser("PixelMaster", "pixel@example.com", "h", ""); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	if _, err := store.CreateUser("PixelMaster", "other@example.com", "h", ""); err != ErrUsernameTaken {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
	if _, err := store.CreateUser("SomeoneElse", "pixel@example.com", "h", ""); err != ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestSubmitScoreRank(t *testing.T) {
	store := openTestStore(t)

	user, err := store.CreateUser("SnakeKing", "king@example.com", "h", "")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	// First entry for a mode is rank 1
	entry, err := store.SubmitScore(user, 100, "walls")
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("Expected rank 1 for the first score, got %d", entry.Rank)
	}

	// A higher score takes rank 1
	entry, err = store.SubmitScore(user, 300, "walls")
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("Expected rank 1 for the new top score, got %d", entry.Rank)
	}

	// A middle score ranks below the top only
	entry, err = store.SubmitScore(user, 200, "walls")
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	if entry.Rank != 2 {
		t.Errorf("Expected rank 2 for the middle score, got %d", entry.Rank)
	}

	// Ties share the rank of the strictly higher count
	entry, err = store.SubmitScore(user, 300, "walls")
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("Expected a tied 300 to share rank 1, got %d", entry.Rank)
	}

	// Other modes rank independently
	entry, err = store.SubmitScore(user, 50, "pass-through")
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("Expected rank 1 in an empty mode, got %d", entry.Rank)
	}
}

func TestLeaderboardOrderingAndFilter(t *testing.T) {
	store := openTestStore(t)

	user, _ := store.CreateUser("NeonViper", "neon@example.com", "h", "")
	store.SubmitScore(user, 100, "walls")
	store.SubmitScore(user, 300, "walls")
	store.SubmitScore(user, 200, "pass-through")

	walls, err := store.Leaderboard("walls", 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(walls) != 2 {
		t.Fatalf("Expected 2 walls entries, got %d", len(walls))
	}
	if walls[0].Score != 300 || walls[1].Score != 100 {
		t.Errorf("Expected scores [300 100], got [%d %d]", walls[0].Score, walls[1].Score)
	}
	if walls[0].Rank != 1 || walls[1].Rank != 2 {
		t.Errorf("Expected ranks [1 2], got [%d %d]", walls[0].Rank, walls[1].Rank)
	}

	// Empty mode returns every mode
	all, err := store.Leaderboard("", 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 entries across modes, got %d", len(all))
	}

	// Limit caps the result
	top, err := store.Leaderboard("", 2)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected 2 entries with limit, got %d", len(top))
	}
	if top[0].Score != 300 {
		t.Errorf("Expected highest score first, got %d", top[0].Score)
	}
}

func TestBestScore(t *testing.T) {
	store := openTestStore(t)

	user, _ := store.CreateUser("PixelMaster", "pixel@example.com", "h", "")

	best, err := store.BestScore(user.ID, "walls")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 with no entries, got %d", best)
	}

	store.SubmitScore(user, 100, "walls")
	store.SubmitScore(user, 250, "walls")
	store.SubmitScore(user, 400, "pass-through")

	best, err = store.BestScore(user.ID, "walls")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 250 {
		t.Errorf("Expected best walls score 250, got %d", best)
	}
}

func TestHighScoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	// Unset scores read as zero
	score, err := store.HighScore(LocalOwner, "walls")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for an unset high score, got %d", score)
	}

	if err := store.SetHighScore(LocalOwner, "walls", 150); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	score, _ = store.HighScore(LocalOwner, "walls")
	if score != 150 {
		t.Errorf("Expected 150, got %d", score)
	}

	// SetHighScore overwrites unconditionally
	if err := store.SetHighScore(LocalOwner, "walls", 120); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	score, _ = store.HighScore(LocalOwner, "walls")
	if score != 120 {
		t.Errorf("Expected overwrite to 120, got %d", score)
	}

	// RaiseHighScore only moves upward
	if err := store.RaiseHighScore(LocalOwner, "walls", 100); err != nil {
		t.Fatalf("RaiseHighScore() failed: %v", err)
	}
	score, _ = store.HighScore(LocalOwner, "walls")
	if score != 120 {
		t.Errorf("Expected 120 to survive a lower raise, got %d", score)
	}
	if err := store.RaiseHighScore(LocalOwner, "walls", 500); err != nil {
		t.Fatalf("RaiseHighScore() failed: %v", err)
	}
	score, _ = store.HighScore(LocalOwner, "walls")
	if score != 500 {
		t.Errorf("Expected raise to 500, got %d", score)
	}

	// Modes are independent
	score, _ = store.HighScore(LocalOwner, "pass-through")
	if score != 0 {
		t.Errorf("Expected pass-through to stay 0, got %d", score)
	}
}

func TestSubmitScoreRaisesHighScore(t *testing.T) {
	store := openTestStore(t)

	user, _ := store.CreateUser("SnakeKing", "king@example.com", "h", "")
	store.SubmitScore(user, 300, "walls")

	score, err := store.HighScore(user.ID, "walls")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 300 {
		t.Errorf("Expected submit to raise the high score to 300, got %d", score)
	}

	// A lower run does not lower it
	store.SubmitScore(user, 100, "walls")
	score, _ = store.HighScore(user.ID, "walls")
	if score != 300 {
		t.Errorf("Expected 300 to survive a lower run, got %d", score)
	}
}

func TestModeScoresAdapter(t *testing.T) {
	store := openTestStore(t)
	scores := store.ScoresFor(LocalOwner)

	if err := scores.SetHighScore(game.ModeWalls, 90); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	got, err := scores.HighScore(game.ModeWalls)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if got != 90 {
		t.Errorf("Expected 90 through the adapter, got %d", got)
	}
}

func TestSeed(t *testing.T) {
	store := openTestStore(t)

	seeded, err := store.Seed("demo-hash")
	if err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if !seeded {
		t.Fatal("Expected the first seed to run")
	}

	// Three demo accounts
	for _, name := range []string{"PixelMaster", "SnakeKing", "NeonViper"} {
		u, err := store.UserByUsername(name)
		if err != nil {
			t.Fatalf("UserByUsername() failed: %v", err)
		}
		if u == nil {
			t.Errorf("Expected seeded user %s", name)
			continue
		}
		if u.PasswordHash != "demo-hash" {
			t.Errorf("Expected seeded hash for %s, got %q", name, u.PasswordHash)
		}
	}

	// Five board rows, best first
	entries, err := store.Leaderboard("", 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("Expected 5 seeded entries, got %d", len(entries))
	}
	if entries[0].Username != "NeonViper" || entries[0].Score != 2450 {
		t.Errorf("Expected NeonViper 2450 on top, got %s %d", entries[0].Username, entries[0].Score)
	}

	// Re-seeding is a no-op
	seeded, err = store.Seed("demo-hash")
	if err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if seeded {
		t.Error("Expected the second seed to be skipped")
	}
	entries, _ = store.Leaderboard("", 10)
	if len(entries) != 5 {
		t.Errorf("Expected 5 entries after re-seed, got %d", len(entries))
	}
}
