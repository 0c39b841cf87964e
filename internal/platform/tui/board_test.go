package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// ansiSeq matches the color escapes lipgloss may emit depending on the
// terminal profile; the layout assertions work on the bare glyphs.
var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestRenderBoardLayout(t *testing.T) {
	grid := game.Grid{Size: 20}
	snake := game.Snake{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	food := game.Cell{X: 5, Y: 5}

	lines := strings.Split(stripANSI(RenderBoard(grid, snake, food)), "\n")

	if len(lines) != grid.Size+2 {
		t.Fatalf("Expected %d lines with borders, got %d", grid.Size+2, len(lines))
	}

	top := "┌" + strings.Repeat("─", grid.Size*cellWidth) + "┐"
	if lines[0] != top {
		t.Errorf("Top border wrong:\n got %q\nwant %q", lines[0], top)
	}
	bottom := "└" + strings.Repeat("─", grid.Size*cellWidth) + "┘"
	if lines[len(lines)-1] != bottom {
		t.Errorf("Bottom border wrong:\n got %q\nwant %q", lines[len(lines)-1], bottom)
	}

	emptyRow := "│" + strings.Repeat("  ", grid.Size) + "│"
	if lines[1] != emptyRow {
		t.Errorf("Empty row wrong:\n got %q\nwant %q", lines[1], emptyRow)
	}

	// Body at x=0,1 then the head at x=2, rest of the row empty.
	snakeRow := "│" + "▓▓▓▓██" + strings.Repeat("  ", grid.Size-3) + "│"
	if lines[2] != snakeRow {
		t.Errorf("Snake row wrong:\n got %q\nwant %q", lines[2], snakeRow)
	}

	foodRow := "│" + strings.Repeat("  ", 5) + "● " + strings.Repeat("  ", grid.Size-6) + "│"
	if lines[6] != foodRow {
		t.Errorf("Food row wrong:\n got %q\nwant %q", lines[6], foodRow)
	}
}

func TestRenderBoardHeadCoversFood(t *testing.T) {
	grid := game.Grid{Size: 10}
	snake := game.Snake{{X: 4, Y: 4}, {X: 3, Y: 4}}
	food := game.Cell{X: 4, Y: 4}

	row := strings.Split(stripANSI(RenderBoard(grid, snake, food)), "\n")[5]
	if strings.Contains(row, "●") {
		t.Errorf("Expected the head to cover the food cell, got %q", row)
	}
	if !strings.Contains(row, "██") {
		t.Errorf("Expected the head glyph in the row, got %q", row)
	}
}

func TestRenderBoardIgnoresOutOfGridFood(t *testing.T) {
	grid := game.Grid{Size: 5}
	snake := game.Snake{{X: 2, Y: 2}}

	out := stripANSI(RenderBoard(grid, snake, game.Cell{X: 9, Y: 9}))
	if strings.Contains(out, "●") {
		t.Errorf("Expected no food glyph for food outside the grid:\n%s", out)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("abcd", 10); got != "   abcd" {
		t.Errorf("centerText = %q, want %q", got, "   abcd")
	}
	if got := centerText("abcdefghij", 4); got != "abcdefghij" {
		t.Errorf("Expected text wider than the target unchanged, got %q", got)
	}
}

func TestCenterBlockCentersEveryLine(t *testing.T) {
	got := centerBlock("ab\nabcd", 8)
	want := "   ab\n  abcd"
	if got != want {
		t.Errorf("centerBlock = %q, want %q", got, want)
	}
}
