package game

import "time"

// Curve maps cumulative score to the tick interval. Every PointsPerStep
// points shave StepMs off the base interval until FloorMs is reached,
// so a higher score always means an equal-or-faster game.
type Curve struct {
	BaseMs        int `yaml:"base_ms"`
	StepMs        int `yaml:"step_ms"`
	FloorMs       int `yaml:"floor_ms"`
	PointsPerStep int `yaml:"points_per_step"`
}

// DefaultCurve returns the standard arena speed curve: 150ms base,
// 5ms faster per 50 points, never under 50ms.
func DefaultCurve() Curve {
	return Curve{BaseMs: 150, StepMs: 5, FloorMs: 50, PointsPerStep: 50}
}

// IntervalMs returns the tick interval in milliseconds for the given
// score. Monotonically non-increasing in score and always positive.
func (c Curve) IntervalMs(score int) int {
	floor := c.FloorMs
	if floor < 1 {
		floor = 1
	}
	if c.PointsPerStep <= 0 || score < 0 {
		return max(floor, c.BaseMs)
	}
	ms := c.BaseMs - (score/c.PointsPerStep)*c.StepMs
	return max(floor, ms)
}

// Interval is IntervalMs as a time.Duration for host schedulers.
func (c Curve) Interval(score int) time.Duration {
	return time.Duration(c.IntervalMs(score)) * time.Millisecond
}
