package game

// CollisionReason says what a rejected move ran into.
type CollisionReason string

const (
	CollideWall CollisionReason = "wall"
	CollideSelf CollisionReason = "self"
)

// MoveResult is the outcome of validating one proposed move. When OK,
// Head holds the resolved head cell (wrapped in pass-through mode);
// otherwise Reason says why the move ends the game.
type MoveResult struct {
	OK     bool
	Head   Cell
	Reason CollisionReason
}

// CheckMove validates moving the snake's head onto proposed under the
// given grid and mode. willGrow must be true when the snake will grow
// this tick (the proposed head lands on food).
//
// The self-collision check skips the segment directly behind the head,
// which no legal single-step move can reach, and skips the tail only on
// non-growing ticks: a vacating tail is free to move into, a tail held
// in place by growth is a real obstacle. The growing case cannot occur
// in a live session (food never spawns on the snake, so a move onto the
// tail never grows), but the rule is part of the contract for direct
// callers.
func CheckMove(g Grid, mode Mode, s Snake, proposed Cell, willGrow bool) MoveResult {
	if mode == ModeWalls {
		if !g.Contains(proposed) {
			return MoveResult{Head: proposed, Reason: CollideWall}
		}
	} else {
		proposed = g.Wrap(proposed)
	}

	limit := len(s)
	if !willGrow {
		limit-- // tail vacates this tick
	}
	for i := 2; i < limit; i++ {
		if s[i] == proposed {
			return MoveResult{Head: proposed, Reason: CollideSelf}
		}
	}

	return MoveResult{OK: true, Head: proposed}
}
