// Package tui implements the terminal screens: local play, live
// watching and the scoreboard, plus the SSH front end that serves the
// same screens remotely. It is a render sink and input source only;
// all game rules live in internal/game.
package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// FrameMsg is sent when the next simulation frame is due.
type FrameMsg time.Time

// frameCmd returns a command that delivers a FrameMsg after d. The
// delay is re-derived every frame, so the loop speeds up as the score
// grows.
func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// frameDelay picks the pacing for one frame: a fixed period when
// frameMs is set, otherwise the score-derived interval of the speed
// curve.
func frameDelay(frameMs int, speed game.Curve, score int) time.Duration {
	if frameMs > 0 {
		return time.Duration(frameMs) * time.Millisecond
	}
	return speed.Interval(score)
}

// termSize reads the local terminal dimensions, with the classic
// 80x24 fallback when stdout is not a terminal.
func termSize() (width, height int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
