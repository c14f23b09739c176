package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type syncResponse struct {
	Received int64 `json:"received"`
}

func (s *Server) handlePing(c *gin.Context) {
	if s.ping != nil {
		if err := s.ping(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "ping failed", "error", err)
			abortError(c, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.users.SignUp(c.Request.Context(), req.Username, req.Password, req.Email)
	switch {
	case err == nil:
		c.Status(http.StatusCreated)
	case errors.Is(err, common.ErrorValidation):
		abortError(c, http.StatusBadRequest, "username and password are required")
	case errors.Is(err, common.ErrorAlreadyExists):
		abortError(c, http.StatusConflict, "username is taken")
	default:
		s.logger.Error(c.Request.Context(), "sign up failed", "error", err)
		abortError(c, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleAuthenticate(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tokenResponse{Token: token})
	case errors.Is(err, common.ErrorUnauthorized):
		abortError(c, http.StatusUnauthorized, "invalid username or password")
	default:
		abortError(c, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleUserProfile(c *gin.Context) {
	user, err := s.users.Profile(c.Request.Context(), c.GetString(userIDKey))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, profileResponse{Username: user.UserName, Email: user.Email})
	case errors.Is(err, common.ErrorUnauthorized):
		abortError(c, http.StatusUnauthorized, "unknown user")
	default:
		s.logger.Error(c.Request.Context(), "profile lookup failed", "error", err)
		abortError(c, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleSyncExpenses(c *gin.Context) {
	var items []models.Expense
	if err := c.ShouldBindJSON(&items); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := s.sync.Receive(c.Request.Context(), c.GetString(userIDKey), items)
	if err != nil {
		s.logger.Error(c.Request.Context(), "sync failed", "error", err)
		abortError(c, http.StatusInternalServerError, "internal error")
		return
	}

	syncedExpensesTotal.Add(float64(n))
	c.JSON(http.StatusOK, syncResponse{Received: n})
}
