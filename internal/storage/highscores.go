package storage

import (
	"github.com/mkrivenko/snake-arena/internal/game"
)

// LocalOwner is the owner id used for high scores recorded by the
// terminal client, which has no account.
const LocalOwner = "local"

// ModeScores adapts the store to the game engine's high-score
// interface for a single owner.
type ModeScores struct {
	store   *Store
	ownerID string
}

// ScoresFor returns the engine-facing high-score view for one owner.
func (s *Store) ScoresFor(ownerID string) *ModeScores {
	return &ModeScores{store: s, ownerID: ownerID}
}

// HighScore implements game.HighScoreStore.
func (m *ModeScores) HighScore(mode game.Mode) (int, error) {
	return m.store.HighScore(m.ownerID, string(mode))
}

// SetHighScore implements game.HighScoreStore.
func (m *ModeScores) SetHighScore(mode game.Mode, score int) error {
	return m.store.SetHighScore(m.ownerID, string(mode), score)
}

// Ensure ModeScores implements the engine interface
var _ game.HighScoreStore = (*ModeScores)(nil)
