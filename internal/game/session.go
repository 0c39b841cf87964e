package game

import (
	"math/rand"
	"time"
)

// HighScoreStore is the persistence boundary for per-mode high scores.
// A session reads once at construction and writes through on every new
// maximum. Implementations live outside this package (SQLite in the
// server, an in-memory stub in tests).
type HighScoreStore interface {
	HighScore(mode Mode) (int, error)
	SetHighScore(mode Mode, score int) error
}

// nopStore backs sessions constructed without persistence.
type nopStore struct{}

func (nopStore) HighScore(Mode) (int, error)  { return 0, nil }
func (nopStore) SetHighScore(Mode, int) error { return nil }

// Session is the authoritative state machine for one game. It owns the
// snake, food, score and status, and advances only through Tick.
//
// A session does no locking of its own: exactly one goroutine may call
// its methods. Hosts that accept input from other goroutines must add
// their own lock; single-loop hosts like the Bubble Tea client and the
// demo bots need nothing.
type Session struct {
	rules   Rules
	mode    Mode
	grid    Grid
	spawner *FoodSpawner
	scores  HighScoreStore

	status     Status
	snake      Snake
	food       Cell
	dir        Direction
	pending    Direction
	score      int
	highScore  int
	intervalMs int
}

// NewSession builds a fresh idle session: a three-segment snake on the
// grid center pointing right, food on a free cell, score zero. The
// high-score store and random source are injected; a nil store disables
// persistence and a nil rng falls back to a time-seeded one.
//
// Resetting a finished or running game is done by constructing a new
// session and dropping the old one, optionally with a different mode.
func NewSession(rules Rules, mode Mode, scores HighScoreStore, rng *rand.Rand) *Session {
	rules = rules.Normalize()
	if !mode.Valid() {
		mode = ModeWalls
	}
	if scores == nil {
		scores = nopStore{}
	}

	s := &Session{
		rules:      rules,
		mode:       mode,
		grid:       rules.Grid(),
		spawner:    NewFoodSpawner(rng),
		scores:     scores,
		status:     StatusIdle,
		snake:      newSnake(rules.Grid(), rules.InitialLength),
		dir:        DirRight,
		pending:    DirRight,
		intervalMs: rules.Speed.IntervalMs(0),
	}

	if hs, err := scores.HighScore(mode); err == nil {
		s.highScore = hs
	}

	if c, ok := s.spawner.Spawn(s.grid, s.snake); ok {
		s.food = c
	} else {
		s.food = noFood
	}

	return s
}

// Start moves an idle session to playing. Any other status ignores the
// call.
func (s *Session) Start() {
	if s.status != StatusIdle {
		return
	}
	s.status = StatusPlaying
}

// TogglePause flips between playing and paused. Idle and finished
// sessions ignore the call.
func (s *Session) TogglePause() {
	switch s.status {
	case StatusPlaying:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusPlaying
	}
}

// RequestDirection records d as the direction for the next tick.
// Ignored while not playing, for unknown values, and for the exact
// reversal of the current direction. Calls between ticks overwrite each
// other; only the last one counts.
func (s *Session) RequestDirection(d Direction) {
	if s.status != StatusPlaying || !d.Valid() {
		return
	}
	if d == s.dir.Opposite() {
		return
	}
	s.pending = d
}

// Tick advances the game by one step. Outside playing it is a no-op.
// A wall or self collision freezes the snake where it was and ends the
// game; eating food grows the snake, respawns food, adds the reward and
// re-derives the tick interval. The pending direction becomes current.
func (s *Session) Tick() {
	if s.status != StatusPlaying {
		return
	}

	s.dir = s.pending
	proposed := s.snake.Head().Step(s.dir)
	if s.mode == ModePassThrough {
		proposed = s.grid.Wrap(proposed)
	}
	willGrow := proposed == s.food

	res := CheckMove(s.grid, s.mode, s.snake, proposed, willGrow)
	if !res.OK {
		s.status = StatusGameOver
		s.bumpHighScore()
		return
	}

	s.snake = s.snake.Advance(res.Head, willGrow)
	if willGrow {
		s.score += s.rules.FoodReward
		s.intervalMs = s.rules.Speed.IntervalMs(s.score)
		s.bumpHighScore()
		if c, ok := s.spawner.Spawn(s.grid, s.snake); ok {
			s.food = c
		} else {
			s.food = noFood
		}
	}
}

// bumpHighScore writes through to the store when the score sets a new
// maximum.
func (s *Session) bumpHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	//nolint:errcheck // best-effort write-through, the session keeps the new max either way
	s.scores.SetHighScore(s.mode, s.score)
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// HighScore returns the best score seen for this mode, including the
// current run.
func (s *Session) HighScore() int {
	return s.highScore
}

// Mode returns the boundary rule the session was built with.
func (s *Session) Mode() Mode {
	return s.mode
}

// Rules returns the parameter set the session was built with.
func (s *Session) Rules() Rules {
	return s.rules
}

// Interval returns the current time between ticks. Hosts re-read it
// after every tick since eating food speeds the game up.
func (s *Session) Interval() time.Duration {
	return time.Duration(s.intervalMs) * time.Millisecond
}
