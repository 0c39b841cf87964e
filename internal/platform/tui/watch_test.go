package tui

import (
	"errors"
	"testing"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
)

func testLivePlayer(score int) game.LivePlayer {
	return game.LivePlayer{
		Username:  "StreamerPro",
		Avatar:    "🐍",
		Score:     score,
		Mode:      game.ModeWalls,
		Status:    game.StatusPlaying,
		Snake:     game.Snake{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Food:      game.Cell{X: 15, Y: 15},
		Direction: game.DirRight,
	}
}

func TestHubSourceStreamsFrames(t *testing.T) {
	hub := live.NewHub(nil)
	hub.Publish("live1", "owner", testLivePlayer(3))

	src := newHubSource(hub, "live1", game.Rules{GridSize: 20}, 0.3, 1)
	defer src.Close()

	first, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read the first frame: %v", err)
	}
	if first.ID != "live1" || first.Score != 3 {
		t.Errorf("First frame = %s/%d, want live1/3", first.ID, first.Score)
	}
	if first.Viewers != 1 {
		t.Errorf("Expected the source to count as a viewer, got %d", first.Viewers)
	}

	second, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read a second frame: %v", err)
	}
	if second.Snake.Head() == first.Snake.Head() {
		t.Error("Expected the simulation to move the snake between frames")
	}
}

func TestHubSourceResyncsOnRealUpdate(t *testing.T) {
	hub := live.NewHub(nil)
	hub.Publish("live1", "owner", testLivePlayer(0))

	src := newHubSource(hub, "live1", game.Rules{GridSize: 20}, 0.3, 1)
	defer src.Close()

	if _, err := src.Next(); err != nil {
		t.Fatalf("Failed to read the first frame: %v", err)
	}

	// A real update bumps the sequence; the next frame must be exactly
	// the posted state, not a simulated continuation.
	posted := testLivePlayer(42)
	posted.Snake = game.Snake{{X: 1, Y: 1}, {X: 1, Y: 2}}
	hub.Publish("live1", "owner", posted)

	frame, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read the resynced frame: %v", err)
	}
	if frame.Score != 42 {
		t.Errorf("Expected the posted score 42, got %d", frame.Score)
	}
	if frame.Snake.Head() != (game.Cell{X: 1, Y: 1}) {
		t.Errorf("Expected the posted snake, got head %+v", frame.Snake.Head())
	}
}

func TestHubSourceEndsWhenSessionGone(t *testing.T) {
	hub := live.NewHub(nil)
	hub.Publish("live1", "owner", testLivePlayer(0))

	src := newHubSource(hub, "live1", game.Rules{GridSize: 20}, 0.3, 1)
	defer src.Close()

	if _, err := src.Next(); err != nil {
		t.Fatalf("Failed to read the first frame: %v", err)
	}

	if err := hub.End("live1", "owner"); err != nil {
		t.Fatalf("Failed to end the session: %v", err)
	}

	if _, err := src.Next(); !errors.Is(err, ErrStreamEnded) {
		t.Errorf("Expected ErrStreamEnded after the session ended, got %v", err)
	}
}

func TestHubSourceCloseDropsViewer(t *testing.T) {
	hub := live.NewHub(nil)
	hub.Publish("live1", "owner", testLivePlayer(0))

	src := newHubSource(hub, "live1", game.Rules{GridSize: 20}, 0.3, 1)
	if p, _, ok := hub.Get("live1"); !ok || p.Viewers != 1 {
		t.Fatalf("Expected one viewer after opening the source, got %d", p.Viewers)
	}

	if err := src.Close(); err != nil {
		t.Fatalf("Failed to close the source: %v", err)
	}
	if p, _, ok := hub.Get("live1"); !ok || p.Viewers != 0 {
		t.Errorf("Expected the viewer count back at zero, got %d", p.Viewers)
	}

	if _, err := src.Next(); !errors.Is(err, ErrStreamEnded) {
		t.Errorf("Expected ErrStreamEnded from a closed source, got %v", err)
	}

	// A second close must not drive the count negative.
	src.Close() //nolint:errcheck // checking the count, not the close
	if p, _, _ := hub.Get("live1"); p.Viewers != 0 {
		t.Errorf("Expected a second close to change nothing, got %d viewers", p.Viewers)
	}
}

func TestDriftSourceAnimatesLocally(t *testing.T) {
	seed := testLivePlayer(5)
	src := newDriftSource(seed, game.Rules{GridSize: 20}, 0.3, 1)
	defer src.Close()

	first, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read the seed frame: %v", err)
	}
	if first.Score != 5 || first.Snake.Head() != seed.Snake.Head() {
		t.Errorf("Expected the seed frame first, got %+v", first)
	}

	second, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read a drifted frame: %v", err)
	}
	if second.Snake.Head() == first.Snake.Head() {
		t.Error("Expected the local simulation to move the snake")
	}
}

func TestDriftSourceHoldsWhenNotPlaying(t *testing.T) {
	seed := testLivePlayer(5)
	seed.Status = game.StatusGameOver
	src := newDriftSource(seed, game.Rules{GridSize: 20}, 0.3, 1)
	defer src.Close()

	first, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read the seed frame: %v", err)
	}
	second, err := src.Next()
	if err != nil {
		t.Fatalf("Failed to read a second frame: %v", err)
	}
	if second.Snake.Head() != first.Snake.Head() {
		t.Error("Expected a finished game to stay frozen")
	}
}
