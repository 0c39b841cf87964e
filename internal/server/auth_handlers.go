package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrivenko/snake-arena/internal/auth"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userData builds the account payload shared by login, signup and me.
func userData(u *storage.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"avatar":     avatarOrNil(u.Avatar),
		"created_at": u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// withToken extends an account payload into the login/signup response.
func (s *Server) withToken(c *gin.Context, u *storage.User) (gin.H, bool) {
	token, err := s.auth.CreateToken(u.ID)
	if err != nil {
		s.internalError(c, err)
		return nil, false
	}
	data := userData(u)
	data["access_token"] = token
	data["token_type"] = "bearer"
	return data, true
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.UserByEmail(req.Email)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondErr(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if data, ok := s.withToken(c, user); ok {
		s.logger.Info("user logged in", "user", user.Username)
		respondOK(c, data)
	}
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondErr(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internalError(c, err)
		return
	}

	user, err := s.store.CreateUser(req.Username, req.Email, hash, "")
	switch {
	case errors.Is(err, storage.ErrEmailTaken):
		respondErr(c, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, storage.ErrUsernameTaken):
		respondErr(c, http.StatusBadRequest, "Username already taken")
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	if data, ok := s.withToken(c, user); ok {
		s.logger.Info("user signed up", "user", user.Username)
		respondOK(c, data)
	}
}

func (s *Server) handleMe(c *gin.Context) {
	respondOK(c, userData(currentUser(c)))
}

// handleLogout acknowledges the logout; the token is stateless and
// dropped client-side.
func (s *Server) handleLogout(c *gin.Context) {
	respondOK(c, nil)
}
