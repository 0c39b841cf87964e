package live

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// Demo bot identities, cycled when more bots are requested than names
// exist.
var (
	botNames   = []string{"StreamerPro", "PixelQueen", "TurboSnake", "ByteCobra", "NullPointer"}
	botAvatars = []string{"🐍", "👾", "🚀", "🤖", "⚡"}
)

// restartDelay is how long a crashed bot lingers in game-over before a
// fresh run, so watchers see the ending.
const restartDelay = 2 * time.Second

// wanderChance is the probability a bot ignores the greedy move and
// picks any safe direction, to keep the play looking human.
const wanderChance = 0.1

// BotRunner drives demo players: real authoritative sessions, steered
// by a trivial food-seeking policy, published into the hub after every
// tick. Each bot goroutine owns its session outright; the hub only
// ever receives copies.
type BotRunner struct {
	hub    *Hub
	rules  game.Rules
	logger *log.Logger

	wg   sync.WaitGroup
	done chan struct{}
}

// NewBotRunner creates a runner publishing into hub with the given
// game rules.
func NewBotRunner(hub *Hub, rules game.Rules, logger *log.Logger) *BotRunner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BotRunner{
		hub:    hub,
		rules:  rules,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches n bots. Call Stop to wind them down.
func (r *BotRunner) Start(n int) {
	for i := 0; i < n; i++ {
		r.wg.Add(1)
		go r.runBot(i)
	}
	if n > 0 {
		r.logger.Info("demo bots started", "count", n)
	}
}

// Stop terminates all bots and waits for them to unregister.
func (r *BotRunner) Stop() {
	close(r.done)
	r.wg.Wait()
}

// botIdentity returns the name, avatar and alternating mode for bot i.
func botIdentity(i int) (name, avatar string, mode game.Mode) {
	name = botNames[i%len(botNames)]
	if i >= len(botNames) {
		name = fmt.Sprintf("%s%d", name, i/len(botNames)+1)
	}
	avatar = botAvatars[i%len(botAvatars)]
	mode = game.ModeWalls
	if i%2 == 1 {
		mode = game.ModePassThrough
	}
	return name, avatar, mode
}

func (r *BotRunner) runBot(i int) {
	defer r.wg.Done()

	name, avatar, mode := botIdentity(i)
	id := fmt.Sprintf("live%d", i+1)
	ownerID := "bot:" + id
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))

	session := game.NewSession(r.rules, mode, nil, rng)
	session.Start()
	r.publish(id, ownerID, name, avatar, session.Snapshot())

	timer := time.NewTimer(session.Interval())
	defer timer.Stop()
	defer r.hub.End(id, ownerID) //nolint:errcheck // session may already be gone

	grid := session.Rules().Grid()

	for {
		select {
		case <-r.done:
			return
		case <-timer.C:
		}

		dir := steer(session.Snapshot(), grid)
		if rng.Float64() < wanderChance {
			if moves := safeMoves(session.Snapshot(), grid); len(moves) > 0 {
				dir = moves[rng.Intn(len(moves))]
			}
		}
		session.RequestDirection(dir)
		session.Tick()
		snap := session.Snapshot()
		r.publish(id, ownerID, name, avatar, snap)

		if snap.Status == game.StatusGameOver {
			r.logger.Debug("demo bot crashed", "bot", name, "score", snap.Score)
			select {
			case <-r.done:
				return
			case <-time.After(restartDelay):
			}
			session = game.NewSession(r.rules, mode, nil, rng)
			session.Start()
			r.publish(id, ownerID, name, avatar, session.Snapshot())
		}

		timer.Reset(session.Interval())
	}
}

func (r *BotRunner) publish(id, ownerID, name, avatar string, snap game.Snapshot) {
	r.hub.Publish(id, ownerID, game.LivePlayer{
		Username:  name,
		Avatar:    avatar,
		Score:     snap.Score,
		Mode:      snap.Mode,
		Status:    snap.Status,
		Snake:     snap.Snake,
		Food:      snap.Food,
		Direction: snap.Direction,
	})
}

// safeMoves returns the moves among straight ahead and the two
// perpendiculars that do not end the game this tick, in that order.
func safeMoves(snap game.Snapshot, grid game.Grid) []game.Direction {
	head := snap.Snake.Head()

	candidates := []game.Direction{snap.Direction}
	switch snap.Direction {
	case game.DirUp, game.DirDown:
		candidates = append(candidates, game.DirLeft, game.DirRight)
	default:
		candidates = append(candidates, game.DirUp, game.DirDown)
	}

	var safe []game.Direction
	for _, d := range candidates {
		proposed := head.Step(d)
		target := proposed
		if snap.Mode == game.ModePassThrough {
			target = grid.Wrap(proposed)
		}
		if game.CheckMove(grid, snap.Mode, snap.Snake, proposed, target == snap.Food).OK {
			safe = append(safe, d)
		}
	}
	return safe
}

// steer picks the safe move that lands the head closest to the food,
// preferring the earlier candidate on ties. When every move is fatal it
// keeps the current direction and lets the session end the game.
func steer(snap game.Snapshot, grid game.Grid) game.Direction {
	best := snap.Direction
	bestDist := -1
	for _, d := range safeMoves(snap, grid) {
		head := snap.Snake.Head().Step(d)
		if snap.Mode == game.ModePassThrough {
			head = grid.Wrap(head)
		}
		dist := wrapDistance(head, snap.Food, grid, snap.Mode)
		if bestDist < 0 || dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best
}

// wrapDistance is the Manhattan distance from a to b, taking the
// shorter way around each axis in pass-through mode.
func wrapDistance(a, b game.Cell, g game.Grid, mode game.Mode) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if mode == game.ModePassThrough {
		if wrapped := g.Size - dx; wrapped < dx {
			dx = wrapped
		}
		if wrapped := g.Size - dy; wrapped < dy {
			dy = wrapped
		}
	}
	return dx + dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
