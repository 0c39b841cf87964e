package game

// Snake is the ordered sequence of occupied cells, head at index 0 and
// tail at the last index. All operations are copy-on-write: they return
// a fresh slice and never mutate the receiver, so snapshots taken
// between ticks stay valid.
type Snake []Cell

// minSnakeLength is the shortest snake the game starts with. Shorter
// bodies make the self-collision rules degenerate.
const minSnakeLength = 3

// Head returns the cell at index 0.
func (s Snake) Head() Cell {
	return s[0]
}

// Tail returns the last cell.
func (s Snake) Tail() Cell {
	return s[len(s)-1]
}

// Occupies reports whether any segment sits on c.
func (s Snake) Occupies(c Cell) bool {
	for _, seg := range s {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance returns the snake after one move: newHead is prepended and,
// unless grew is true, the tail cell is dropped so the length stays
// constant. Surviving segments keep their order.
func (s Snake) Advance(newHead Cell, grew bool) Snake {
	keep := len(s)
	if !grew {
		keep--
	}
	next := make(Snake, 0, keep+1)
	next = append(next, newHead)
	next = append(next, s[:keep]...)
	return next
}

// Grow returns the snake one segment longer by duplicating the tail
// cell. The duplicate unstacks on the next non-growing Advance, which
// is how call sites defer growth by a tick.
func (s Snake) Grow() Snake {
	next := make(Snake, 0, len(s)+1)
	next = append(next, s...)
	next = append(next, s.Tail())
	return next
}

// Clone returns an independent copy of the snake.
func (s Snake) Clone() Snake {
	next := make(Snake, len(s))
	copy(next, s)
	return next
}

// newSnake builds the starting snake: head on the grid center with the
// body extending left, ready to move right.
func newSnake(g Grid, length int) Snake {
	if length < minSnakeLength {
		length = minSnakeLength
	}
	head := g.Center()
	s := make(Snake, 0, length)
	for i := 0; i < length; i++ {
		s = append(s, Cell{X: head.X - i, Y: head.Y})
	}
	return s
}
