package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope every JSON endpoint wraps its payload in.
// Data and Error stay null when unused, so clients can branch on
// success alone.
type apiResponse struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func respondErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, apiResponse{Success: false, Error: &msg})
}

// internalError logs the cause and hides it from the client.
func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"err", err,
	)
	respondErr(c, http.StatusInternalServerError, "Internal server error")
}

// avatarOrNil maps the storage empty-string avatar to a JSON null.
func avatarOrNil(avatar string) *string {
	if avatar == "" {
		return nil
	}
	return &avatar
}
