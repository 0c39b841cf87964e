// Package storage provides SQLite-based persistence for accounts,
// leaderboard entries and per-mode high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Lookup failures that callers branch on. Everything else comes back
// wrapped.
var (
	ErrUsernameTaken = errors.New("storage: username already taken")
	ErrEmailTaken    = errors.New("storage: email already registered")
)

// User is an account record. PasswordHash never leaves the server
// process.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}

// LeaderboardEntry is a single submitted run. Username and Avatar are
// denormalized at submit time so the board survives account changes.
type LeaderboardEntry struct {
	ID        string
	UserID    string
	Username  string
	Avatar    string
	Score     int
	Mode      string
	Rank      int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

		CREATE TABLE IF NOT EXISTS leaderboard (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			username TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			mode TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_user ON leaderboard(user_id, mode);

		CREATE TABLE IF NOT EXISTS high_scores (
			owner_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner_id, mode)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateUser inserts a new account with a generated id. The password
// arrives already hashed. Returns ErrUsernameTaken or ErrEmailTaken
// when the unique fields collide.
func (s *Store) CreateUser(username, email, passwordHash, avatar string) (*User, error) {
	if u, err := s.UserByEmail(email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}
	if u, err := s.UserByUsername(username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrUsernameTaken
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO users (id, username, email, password_hash, avatar, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Avatar,
		user.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create user: %w", err)
	}

	return user, nil
}

// UserByID retrieves a user by id. Returns nil without error when the
// user does not exist.
func (s *Store) UserByID(id string) (*User, error) {
	return s.userWhere("id = ?", id)
}

// UserByEmail retrieves a user by email. Returns nil without error
// when the user does not exist.
func (s *Store) UserByEmail(email string) (*User, error) {
	return s.userWhere("email = ?", email)
}

// UserByUsername retrieves a user by username. Returns nil without
// error when the user does not exist.
func (s *Store) UserByUsername(username string) (*User, error) {
	return s.userWhere("username = ?", username)
}

func (s *Store) userWhere(cond string, arg any) (*User, error) {
	var u User
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, username, email, password_hash, avatar, created_at
		 FROM users WHERE `+cond,
		arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.CreatedAt = parseTimestamp(createdAt)
	return &u, nil
}

// SubmitScore appends a run to the leaderboard and returns the stored
// entry with its rank. Rank is one plus the number of strictly higher
// scores in the same mode, so ties share a rank.
func (s *Store) SubmitScore(user *User, score int, mode string) (*LeaderboardEntry, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO leaderboard (id, user_id, username, avatar, score, mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, user.ID, user.Username, user.Avatar, score, mode,
		createdAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot submit score: %w", err)
	}

	var higher int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM leaderboard WHERE mode = ? AND score > ?",
		mode, score,
	).Scan(&higher)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot compute rank: %w", err)
	}

	// A personal best also raises the owner's stored high score
	if err := s.RaiseHighScore(user.ID, mode, score); err != nil {
		return nil, err
	}

	return &LeaderboardEntry{
		ID:        id,
		UserID:    user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Score:     score,
		Mode:      mode,
		Rank:      higher + 1,
		CreatedAt: createdAt,
	}, nil
}

// Leaderboard retrieves the top entries ordered by score descending,
// optionally filtered by mode (empty means all modes). Rank is the
// 1-based position within the returned ordering.
func (s *Store) Leaderboard(mode string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, user_id, username, avatar, score, mode, created_at
	          FROM leaderboard`
	args := []any{}
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY score DESC, created_at ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Avatar, &e.Score, &e.Mode, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns a user's highest leaderboard score for a mode, or
// 0 when they have no entries.
func (s *Store) BestScore(userID, mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM leaderboard WHERE user_id = ? AND mode = ?",
		userID, mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// HighScore returns the stored high score for an owner and mode, or 0
// when none has been recorded.
func (s *Store) HighScore(ownerID, mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE owner_id = ? AND mode = ?",
		ownerID, mode,
	).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// SetHighScore stores score as the owner's high score for a mode,
// overwriting whatever was there.
func (s *Store) SetHighScore(ownerID, mode string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (owner_id, mode, score, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner_id, mode) DO UPDATE SET
		   score = excluded.score,
		   updated_at = CURRENT_TIMESTAMP`,
		ownerID, mode, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set high score: %w", err)
	}
	return nil
}

// RaiseHighScore stores score only when it beats the owner's current
// high score for the mode.
func (s *Store) RaiseHighScore(ownerID, mode string, score int) error {
	current, err := s.HighScore(ownerID, mode)
	if err != nil {
		return err
	}
	if score <= current {
		return nil
	}
	return s.SetHighScore(ownerID, mode, score)
}

// parseTimestamp converts a scanned created_at value, which the driver
// may deliver as time.Time or as a string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
