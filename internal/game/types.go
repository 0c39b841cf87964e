// Package game implements the Snake Arena simulation engine: the
// authoritative per-tick state machine that moves the snake, detects
// collisions, spawns food and scales difficulty, plus the cosmetic
// spectator simulator used for live playback.
//
// The package contains pure logic only. Randomness, high-score
// persistence and tick scheduling are injected by the host; nothing
// here does I/O.
package game

// Cell is a single grid coordinate. Cells are immutable values.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring cell one move along d.
// The result is unbounded; callers wrap or bounds-check it.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is the snake's movement direction. The values double as the
// wire representation used by the REST and WebSocket payloads.
type Direction string

const (
	DirUp    Direction = "UP"
	DirDown  Direction = "DOWN"
	DirLeft  Direction = "LEFT"
	DirRight Direction = "RIGHT"
)

// Delta returns the per-tick coordinate offset for the direction.
// Unknown directions yield a zero offset.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the 180-degree reversal of the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// ParseDirection converts a wire string into a Direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(s)
	return d, d.Valid()
}

// Mode selects the boundary rule for a session. It is fixed for the
// lifetime of one session; switching modes means starting a new one.
type Mode string

const (
	// ModeWalls ends the game when the snake leaves the grid.
	ModeWalls Mode = "walls"
	// ModePassThrough wraps the snake around to the opposite edge.
	ModePassThrough Mode = "pass-through"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeWalls || m == ModePassThrough
}

// ParseMode converts a wire string into a Mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, m.Valid()
}

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game-over"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusPlaying, StatusPaused, StatusGameOver:
		return true
	}
	return false
}
