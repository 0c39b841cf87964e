package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrivenko/snake-arena/internal/storage"
)

// userKey is the gin context key the auth middleware stores the caller
// under.
const userKey = "arena.user"

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"dur", time.Since(start),
		)
	}
}

func (s *Server) corsHeaders() gin.HandlerFunc {
	allowAny := len(s.cors) == 0
	allowed := make(map[string]struct{}, len(s.cors))
	for _, o := range s.cors {
		if o == "*" {
			allowAny = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			switch {
			case allowAny:
				c.Header("Access-Control-Allow-Origin", "*")
			default:
				if _, ok := allowed[origin]; ok {
					c.Header("Access-Control-Allow-Origin", origin)
					c.Header("Vary", "Origin")
				}
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requireUser authenticates the bearer token and loads the account
// into the request context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			respondErr(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			respondErr(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := s.store.UserByID(userID)
		if err != nil {
			s.internalError(c, err)
			return
		}
		if user == nil {
			respondErr(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the account loaded by requireUser. Only valid on
// routes behind that middleware.
func currentUser(c *gin.Context) *storage.User {
	v, _ := c.Get(userKey)
	user, _ := v.(*storage.User)
	return user
}
