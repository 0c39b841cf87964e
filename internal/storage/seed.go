package storage

import (
	"fmt"
	"time"
)

// seedUser is one demo account inserted by Seed.
type seedUser struct {
	username string
	email    string
	daysAgo  int
}

// seedEntry is one demo leaderboard row.
type seedEntry struct {
	username string
	score    int
	mode     string
	daysAgo  int
}

var seedUsers = []seedUser{
	{username: "PixelMaster", email: "user1@example.com", daysAgo: 50},
	{username: "SnakeKing", email: "user2@example.com", daysAgo: 40},
	{username: "NeonViper", email: "user3@example.com", daysAgo: 30},
}

var seedEntries = []seedEntry{
	{username: "NeonViper", score: 2450, mode: "walls", daysAgo: 7},
	{username: "PixelMaster", score: 2100, mode: "walls", daysAgo: 6},
	{username: "SnakeKing", score: 1890, mode: "pass-through", daysAgo: 5},
	{username: "NeonViper", score: 1750, mode: "pass-through", daysAgo: 4},
	{username: "PixelMaster", score: 1620, mode: "walls", daysAgo: 3},
}

// Seed inserts the demo accounts and leaderboard rows used for local
// development. All demo accounts share the given password hash. The
// call is skipped (returning false) when any user already exists.
func (s *Store) Seed(passwordHash string) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return false, fmt.Errorf("storage: cannot check seed state: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	byName := make(map[string]*User, len(seedUsers))

	for _, su := range seedUsers {
		user, err := s.CreateUser(su.username, su.email, passwordHash, "")
		if err != nil {
			return false, err
		}
		createdAt := now.AddDate(0, 0, -su.daysAgo)
		if _, err := s.db.Exec(
			"UPDATE users SET created_at = ? WHERE id = ?",
			createdAt.Format("2006-01-02 15:04:05"), user.ID,
		); err != nil {
			return false, fmt.Errorf("storage: cannot backdate user: %w", err)
		}
		user.CreatedAt = createdAt
		byName[user.Username] = user
	}

	for _, se := range seedEntries {
		user := byName[se.username]
		entry, err := s.SubmitScore(user, se.score, se.mode)
		if err != nil {
			return false, err
		}
		createdAt := now.AddDate(0, 0, -se.daysAgo)
		if _, err := s.db.Exec(
			"UPDATE leaderboard SET created_at = ? WHERE id = ?",
			createdAt.Format("2006-01-02 15:04:05"), entry.ID,
		); err != nil {
			return false, fmt.Errorf("storage: cannot backdate entry: %w", err)
		}
	}

	return true, nil
}
