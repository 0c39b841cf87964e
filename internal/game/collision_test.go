package game

import "testing"

func TestCheckMoveWalls(t *testing.T) {
	g := Grid{Size: 20}
	s := Snake{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}

	// A free in-bounds cell is fine
	res := CheckMove(g, ModeWalls, s, Cell{X: 11, Y: 10}, false)
	if !res.OK {
		t.Fatalf("Expected open move to pass, got reason %s", res.Reason)
	}
	if res.Head != (Cell{X: 11, Y: 10}) {
		t.Errorf("Expected head (11,10), got (%d,%d)", res.Head.X, res.Head.Y)
	}

	// Leaving the grid on any side is fatal
	outside := []Cell{{X: -1, Y: 10}, {X: 20, Y: 10}, {X: 10, Y: -1}, {X: 10, Y: 20}}
	for _, c := range outside {
		res := CheckMove(g, ModeWalls, s, c, false)
		if res.OK {
			t.Errorf("Expected (%d,%d) to hit the wall", c.X, c.Y)
		}
		if res.Reason != CollideWall {
			t.Errorf("Expected reason %s for (%d,%d), got %s", CollideWall, c.X, c.Y, res.Reason)
		}
	}
}

func TestCheckMovePassThroughWraps(t *testing.T) {
	g := Grid{Size: 20}
	s := Snake{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}

	cases := []struct {
		proposed, want Cell
	}{
		{Cell{X: 20, Y: 10}, Cell{X: 0, Y: 10}},
		{Cell{X: -1, Y: 10}, Cell{X: 19, Y: 10}},
		{Cell{X: 10, Y: 20}, Cell{X: 10, Y: 0}},
		{Cell{X: 10, Y: -1}, Cell{X: 10, Y: 19}},
	}
	for _, tc := range cases {
		res := CheckMove(g, ModePassThrough, s, tc.proposed, false)
		if !res.OK {
			t.Errorf("Expected (%d,%d) to wrap, got reason %s", tc.proposed.X, tc.proposed.Y, res.Reason)
		}
		if res.Head != tc.want {
			t.Errorf("Expected (%d,%d) to wrap to (%d,%d), got (%d,%d)",
				tc.proposed.X, tc.proposed.Y, tc.want.X, tc.want.Y, res.Head.X, res.Head.Y)
		}
	}
}

func TestCheckMoveSelfCollision(t *testing.T) {
	g := Grid{Size: 20}

	// Spiral whose head at (5,5) moves right into its own body at (6,5)
	s := Snake{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}

	res := CheckMove(g, ModeWalls, s, Cell{X: 6, Y: 5}, false)
	if res.OK {
		t.Fatal("Expected self collision")
	}
	if res.Reason != CollideSelf {
		t.Errorf("Expected reason %s, got %s", CollideSelf, res.Reason)
	}
}

func TestCheckMoveOntoTail(t *testing.T) {
	g := Grid{Size: 20}

	// Closed square: head (1,1), tail (2,1) directly right of the head
	s := Snake{
		{X: 1, Y: 1},
		{X: 1, Y: 2},
		{X: 2, Y: 2},
		{X: 2, Y: 1},
	}

	// On a plain tick the tail vacates its cell, so stepping onto it is legal
	res := CheckMove(g, ModeWalls, s, Cell{X: 2, Y: 1}, false)
	if !res.OK {
		t.Errorf("Expected step onto the vacating tail to pass, got reason %s", res.Reason)
	}

	// On a growing tick the tail stays put and the same step is fatal
	res = CheckMove(g, ModeWalls, s, Cell{X: 2, Y: 1}, true)
	if res.OK {
		t.Error("Expected step onto the held tail to collide")
	}
	if res.Reason != CollideSelf {
		t.Errorf("Expected reason %s, got %s", CollideSelf, res.Reason)
	}
}
