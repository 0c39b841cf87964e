package game

// Grid is the static playfield geometry: a square of Size x Size cells
// with coordinates in [0, Size).
type Grid struct {
	Size int
}

// Contains reports whether c lies inside the grid bounds. This is the
// walls-mode legality check.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// Wrap reduces both coordinates modulo the grid size, mapping any cell
// onto the torus. Used by pass-through mode; wrapping an in-bounds cell
// is the identity.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{
		X: mod(c.X, g.Size),
		Y: mod(c.Y, g.Size),
	}
}

// Center returns the middle cell, where fresh snakes spawn their head.
func (g Grid) Center() Cell {
	return Cell{X: g.Size / 2, Y: g.Size / 2}
}

// CellCount returns the total number of cells on the grid.
func (g Grid) CellCount() int {
	return g.Size * g.Size
}

// mod is the floored modulo, non-negative for any a when n > 0.
// Go's % operator keeps the sign of the dividend, which would map a
// head at -1 to -1 instead of n-1.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
