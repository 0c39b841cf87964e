package game

import (
	"math/rand"
	"time"
)

// noFood marks a session with nowhere left to put food. The head can
// never reach it, so play simply continues without growth.
var noFood = Cell{X: -1, Y: -1}

// FoodSpawner places food on random free cells. The random source is
// injected so hosts can seed it for deterministic replays and tests.
type FoodSpawner struct {
	rng *rand.Rand
}

// NewFoodSpawner creates a spawner drawing from rng. A nil rng is
// replaced with a time-seeded one.
func NewFoodSpawner(rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{rng: rngOrSeeded(rng)}
}

// rngOrSeeded substitutes a time-seeded source for nil, so callers
// that do not care about determinism can pass nil everywhere.
func rngOrSeeded(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Spawn picks a uniformly random cell not occupied by the snake.
// Rejection sampling is bounded by the cell count; after that a
// deterministic row-major scan finds the first free cell, so a crowded
// grid can never hang the tick. ok is false only when the snake covers
// the whole grid.
func (f *FoodSpawner) Spawn(g Grid, s Snake) (c Cell, ok bool) {
	for i := 0; i < g.CellCount(); i++ {
		c := Cell{X: f.rng.Intn(g.Size), Y: f.rng.Intn(g.Size)}
		if !s.Occupies(c) {
			return c, true
		}
	}

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			c := Cell{X: x, Y: y}
			if !s.Occupies(c) {
				return c, true
			}
		}
	}

	return noFood, false
}
