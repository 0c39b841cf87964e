package game

// Rules bundles the tunable parameters of a session. A Rules value is
// immutable once a session is constructed from it.
type Rules struct {
	GridSize      int   `yaml:"grid_size"`
	InitialLength int   `yaml:"initial_length"`
	FoodReward    int   `yaml:"food_reward"`
	Speed         Curve `yaml:"speed"`
}

// DefaultRules returns the classic arena setup: 20x20 grid, 3-segment
// snake, 10 points per food, default speed curve.
func DefaultRules() Rules {
	return Rules{
		GridSize:      20,
		InitialLength: 3,
		FoodReward:    10,
		Speed:         DefaultCurve(),
	}
}

// Grid returns the playfield geometry for these rules.
func (r Rules) Grid() Grid {
	return Grid{Size: r.GridSize}
}

// Normalize clamps out-of-range values to playable ones: the grid must
// fit the starting snake and the snake needs its minimum three
// segments. Zero-valued speed fields fall back to the default curve.
func (r Rules) Normalize() Rules {
	if r.InitialLength < minSnakeLength {
		r.InitialLength = minSnakeLength
	}
	if r.GridSize < r.InitialLength+2 {
		r.GridSize = DefaultRules().GridSize
	}
	if r.FoodReward <= 0 {
		r.FoodReward = DefaultRules().FoodReward
	}
	if r.Speed.BaseMs <= 0 {
		r.Speed = DefaultCurve()
	}
	return r
}
