package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
)

func (s *Server) handleLivePlayers(c *gin.Context) {
	respondOK(c, gin.H{"players": s.hub.List()})
}

func (s *Server) handleLivePlayer(c *gin.Context) {
	player, _, ok := s.hub.Get(c.Param("id"))
	if !ok {
		respondErr(c, http.StatusNotFound, "Player not found")
		return
	}
	respondOK(c, player)
}

type createSessionRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	mode, ok := game.ParseMode(req.Mode)
	if !ok {
		respondErr(c, http.StatusBadRequest, "Invalid game mode")
		return
	}

	user := currentUser(c)
	player := s.hub.Create(user.ID, user.Username, user.Avatar, mode)
	respondOK(c, player)
}

type updateSessionRequest struct {
	Score     *int           `json:"score"`
	Snake     game.Snake     `json:"snake"`
	Food      game.Cell      `json:"food"`
	Direction game.Direction `json:"direction"`
	Status    game.Status    `json:"status"`
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if *req.Score < 0 {
		respondErr(c, http.StatusBadRequest, "Score cannot be negative")
		return
	}

	user := currentUser(c)
	player, err := s.hub.Update(c.Param("id"), user.ID,
		*req.Score, req.Snake, req.Food, req.Direction, req.Status)
	switch {
	case errors.Is(err, live.ErrNotFound):
		respondErr(c, http.StatusNotFound, "Live session not found")
	case errors.Is(err, live.ErrNotOwner):
		respondErr(c, http.StatusForbidden, "Not your live session")
	case err != nil:
		s.internalError(c, err)
	default:
		respondOK(c, player)
	}
}

func (s *Server) handleEndSession(c *gin.Context) {
	user := currentUser(c)
	err := s.hub.End(c.Param("id"), user.ID)
	switch {
	case errors.Is(err, live.ErrNotFound):
		respondErr(c, http.StatusNotFound, "Live session not found")
	case errors.Is(err, live.ErrNotOwner):
		respondErr(c, http.StatusForbidden, "Not your live session")
	case err != nil:
		s.internalError(c, err)
	default:
		respondOK(c, nil)
	}
}
