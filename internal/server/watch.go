package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// handleWatch upgrades to a WebSocket and streams frames for one live
// player. The stream is cosmetic: each connection runs its own
// spectator simulation seeded from the player's snapshot, so two
// watchers of the same player see plausibly different play. Whenever
// the player posts a real update the simulation re-seeds from it.
func (s *Server) handleWatch(c *gin.Context) {
	id := c.Param("id")

	local, seq, ok := s.hub.Get(id)
	if !ok {
		respondErr(c, http.StatusNotFound, "Player not found")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own HTTP error.
		s.logger.Debug("watch upgrade failed", "player", id, "err", err)
		return
	}
	defer conn.Close() //nolint:errcheck // connection is done either way

	s.hub.AddViewer(id)
	defer s.hub.RemoveViewer(id)
	s.logger.Debug("watcher connected", "player", id)

	// Reads only serve to notice the client hanging up.
	readerGone := make(chan struct{})
	go func() {
		defer close(readerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	spectator := game.NewSpectator(s.rules, s.turnChance, nil)

	timer := time.NewTimer(s.frameInterval(local.Score))
	defer timer.Stop()

	for {
		current, currentSeq, ok := s.hub.Get(id)
		if !ok {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
			//nolint:errcheck // best-effort goodbye
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
		if currentSeq != seq {
			seq = currentSeq
			local = current
		}
		local.Viewers = current.Viewers

		if err := conn.WriteJSON(local); err != nil {
			return
		}
		if local.Status == game.StatusPlaying {
			local = spectator.Tick(local)
		}

		select {
		case <-readerGone:
			return
		case <-timer.C:
			timer.Reset(s.frameInterval(local.Score))
		}
	}
}

// frameInterval is the delay before the next watch frame.
func (s *Server) frameInterval(score int) time.Duration {
	if s.frameMs > 0 {
		return time.Duration(s.frameMs) * time.Millisecond
	}
	return s.rules.Speed.Interval(score)
}
