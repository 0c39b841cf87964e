package game

// Snapshot is a point-in-time copy of session state, safe to hold
// after further ticks and shaped for JSON transport.
type Snapshot struct {
	Snake      Snake     `json:"snake"`
	Food       Cell      `json:"food"`
	Direction  Direction `json:"direction"`
	Score      int       `json:"score"`
	HighScore  int       `json:"highScore"`
	Status     Status    `json:"status"`
	Mode       Mode      `json:"mode"`
	IntervalMs int       `json:"intervalMs"`
}

// Snapshot copies the observable state. The snake slice is cloned so
// callers can render or serialize it while the session keeps ticking.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Snake:      s.snake.Clone(),
		Food:       s.food,
		Direction:  s.dir,
		Score:      s.score,
		HighScore:  s.highScore,
		Status:     s.status,
		Mode:       s.mode,
		IntervalMs: s.intervalMs,
	}
}
