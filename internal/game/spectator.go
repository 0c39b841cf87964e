package game

import "math/rand"

// LivePlayer is the published state of someone currently playing,
// as tracked by the live directory and streamed to watchers.
type LivePlayer struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Score     int       `json:"score"`
	Mode      Mode      `json:"mode"`
	Status    Status    `json:"status"`
	Snake     Snake     `json:"snake"`
	Food      Cell      `json:"food"`
	Direction Direction `json:"direction"`
	Viewers   int       `json:"viewers"`
}

// defaultTurnChance is the per-tick probability that a simulated
// player picks a new direction.
const defaultTurnChance = 0.3

// Spectator animates a LivePlayer for watchers. It is cosmetic
// playback, not a second rules engine: the snake always wraps, never
// collides and never dies. Each watcher gets their own Spectator, so
// two people watching the same player see simulations that drift
// apart.
type Spectator struct {
	grid       Grid
	reward     int
	turnChance float64
	spawner    *FoodSpawner
	rng        *rand.Rand
}

// NewSpectator builds a simulator over the same grid and food reward
// as the real game. turnChance outside (0, 1] falls back to the
// default; a nil rng is replaced with a time-seeded one.
func NewSpectator(rules Rules, turnChance float64, rng *rand.Rand) *Spectator {
	rules = rules.Normalize()
	if turnChance <= 0 || turnChance > 1 {
		turnChance = defaultTurnChance
	}
	return &Spectator{
		grid:       rules.Grid(),
		reward:     rules.FoodReward,
		turnChance: turnChance,
		spawner:    NewFoodSpawner(rng),
		rng:        rngOrSeeded(rng),
	}
}

// Tick advances p by one simulated step and returns the result as a
// new value; p itself is left untouched so the caller decides when to
// commit. Movement wraps at every edge regardless of p.Mode, food is
// eaten and respawned with the usual reward, and with a small chance
// the snake turns onto one of its two perpendicular directions.
func (sp *Spectator) Tick(p LivePlayer) LivePlayer {
	next := p
	next.Snake = p.Snake.Clone()
	if len(next.Snake) == 0 {
		next.Snake = newSnake(sp.grid, minSnakeLength)
		next.Direction = DirRight
	}

	dir := next.Direction
	if !dir.Valid() {
		dir = DirRight
	}
	if sp.rng.Float64() < sp.turnChance {
		dir = sp.turn(dir)
	}

	head := sp.grid.Wrap(next.Snake.Head().Step(dir))
	grew := head == next.Food
	next.Snake = next.Snake.Advance(head, grew)
	next.Direction = dir
	if grew {
		next.Score += sp.reward
		if c, ok := sp.spawner.Spawn(sp.grid, next.Snake); ok {
			next.Food = c
		} else {
			next.Food = noFood
		}
	}
	return next
}

// turn picks one of the two directions perpendicular to d, so the
// snake never doubles back on itself.
func (sp *Spectator) turn(d Direction) Direction {
	var perp [2]Direction
	switch d {
	case DirUp, DirDown:
		perp = [2]Direction{DirLeft, DirRight}
	default:
		perp = [2]Direction{DirUp, DirDown}
	}
	return perp[sp.rng.Intn(len(perp))]
}
