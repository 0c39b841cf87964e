// Package live tracks who is playing right now and feeds the
// spectator views. The hub is purely in-memory: live state dies
// with the process, only finished scores ever reach the database.
package live

import (
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkrivenko/snake-arena/internal/game"
)

var (
	ErrNotFound = errors.New("live: session not found")
	ErrNotOwner = errors.New("live: session belongs to another user")
)

// entry is one live session plus the bookkeeping the wire format does
// not carry.
type entry struct {
	player  game.LivePlayer
	ownerID string
	seq     uint64
	updated time.Time
}

// Hub is the registry of live sessions. Safe for concurrent use; all
// methods return copies, never references into the map.
type Hub struct {
	mu      sync.RWMutex
	players map[string]*entry
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		players: make(map[string]*entry),
		logger:  logger,
	}
}

// Create registers a new live session for the owner and returns its
// snapshot. An owner has at most one live session: any previous one is
// ended first. The starting state mirrors a fresh game.
func (h *Hub) Create(ownerID, username, avatar string, mode game.Mode) game.LivePlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, e := range h.players {
		if e.ownerID == ownerID {
			delete(h.players, id)
			h.logger.Debug("replaced live session", "user", username, "old_id", id)
		}
	}

	p := game.LivePlayer{
		ID:        uuid.NewString(),
		Username:  username,
		Avatar:    avatar,
		Score:     0,
		Mode:      mode,
		Status:    game.StatusPlaying,
		Snake:     game.Snake{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Food:      game.Cell{X: 15, Y: 15},
		Direction: game.DirRight,
		Viewers:   0,
	}
	h.players[p.ID] = &entry{player: p, ownerID: ownerID, seq: 1, updated: time.Now()}

	h.logger.Info("live session started", "user", username, "id", p.ID, "mode", mode)
	return p
}

// Publish registers or replaces a live session with a caller-supplied
// id and full state. Used by the demo bots, which own their sessions
// outright.
func (h *Hub) Publish(id, ownerID string, p game.LivePlayer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p.ID = id
	if prev, ok := h.players[id]; ok {
		p.Viewers = prev.player.Viewers
		prev.player = p
		prev.seq++
		prev.updated = time.Now()
		return
	}
	h.players[id] = &entry{player: p, ownerID: ownerID, seq: 1, updated: time.Now()}
}

// Update replaces the game state of a session. Only the owner may
// update it. Viewer count is managed by the hub and ignored on input.
func (h *Hub) Update(id, ownerID string, score int, snake game.Snake, food game.Cell, dir game.Direction, status game.Status) (game.LivePlayer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.players[id]
	if !ok {
		return game.LivePlayer{}, ErrNotFound
	}
	if e.ownerID != ownerID {
		return game.LivePlayer{}, ErrNotOwner
	}

	e.player.Score = score
	e.player.Snake = snake.Clone()
	e.player.Food = food
	e.player.Direction = dir
	if status.Valid() {
		e.player.Status = status
	}
	e.seq++
	e.updated = time.Now()

	return e.player, nil
}

// End removes a session. Only the owner may end it. Watchers notice
// the id disappearing and close their streams.
func (h *Hub) End(id, ownerID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.players[id]
	if !ok {
		return ErrNotFound
	}
	if e.ownerID != ownerID {
		return ErrNotOwner
	}

	delete(h.players, id)
	h.logger.Info("live session ended", "user", e.player.Username, "id", id)
	return nil
}

// Get returns a session snapshot and its update sequence number.
// Watchers compare sequence numbers to notice real updates between
// their simulated frames.
func (h *Hub) Get(id string) (game.LivePlayer, uint64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.players[id]
	if !ok {
		return game.LivePlayer{}, 0, false
	}
	p := e.player
	p.Snake = e.player.Snake.Clone()
	return p, e.seq, true
}

// List returns every live session, most watched first. Username breaks
// ties so the order is stable.
func (h *Hub) List() []game.LivePlayer {
	h.mu.RLock()
	defer h.mu.RUnlock()

	players := make([]game.LivePlayer, 0, len(h.players))
	for _, e := range h.players {
		p := e.player
		p.Snake = e.player.Snake.Clone()
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Viewers != players[j].Viewers {
			return players[i].Viewers > players[j].Viewers
		}
		return players[i].Username < players[j].Username
	})

	return players
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.players)
}

// AddViewer increments the viewer count of a session.
func (h *Hub) AddViewer(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.players[id]
	if !ok {
		return false
	}
	e.player.Viewers++
	return true
}

// RemoveViewer decrements the viewer count, never below zero. Removing
// a viewer from an already ended session is a no-op.
func (h *Hub) RemoveViewer(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.players[id]
	if !ok {
		return
	}
	if e.player.Viewers > 0 {
		e.player.Viewers--
	}
}
