package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader(common.AuthorizationHeaderName)
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// requireUser rejects requests without a valid bearer token.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortError(c, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := s.users.UserIDFromToken(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "token expired"
			}
			abortError(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// optionalUser attaches the user when a token is sent. A request without a
// token passes through anonymously; a bad token is still rejected.
func (s *Server) optionalUser() gin.HandlerFunc {
	required := s.requireUser()
	return func(c *gin.Context) {
		if bearerToken(c) == "" {
			c.Next()
			return
		}
		required(c)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
