package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// entryData is the leaderboard wire shape: rank plus the denormalized
// run fields, dated by day.
func entryData(e storage.LeaderboardEntry) gin.H {
	return gin.H{
		"id":       e.ID,
		"rank":     e.Rank,
		"username": e.Username,
		"score":    e.Score,
		"mode":     e.Mode,
		"date":     e.CreatedAt.UTC().Format("2006-01-02"),
		"avatar":   avatarOrNil(e.Avatar),
	}
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	mode := c.Query("mode")
	if mode != "" {
		if _, ok := game.ParseMode(mode); !ok {
			respondErr(c, http.StatusBadRequest, "Invalid game mode")
			return
		}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondErr(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.store.Leaderboard(mode, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	wire := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		wire = append(wire, entryData(e))
	}
	respondOK(c, gin.H{"entries": wire})
}

type submitRequest struct {
	Score *int   `json:"score"`
	Mode  string `json:"mode"`
}

func (s *Server) handleSubmitScore(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if *req.Score < 0 {
		respondErr(c, http.StatusBadRequest, "Score cannot be negative")
		return
	}
	if _, ok := game.ParseMode(req.Mode); !ok {
		respondErr(c, http.StatusBadRequest, "Invalid game mode")
		return
	}

	user := currentUser(c)
	entry, err := s.store.SubmitScore(user, *req.Score, req.Mode)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.logger.Info("score submitted",
		"user", user.Username, "score", entry.Score, "mode", entry.Mode, "rank", entry.Rank)
	respondOK(c, entryData(*entry))
}
