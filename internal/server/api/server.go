// Package api exposes the finkeeper HTTP API on gin.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

// UserService is what the handlers need from services.UserService.
type UserService interface {
	SignUp(ctx context.Context, username, password, email string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	UserIDFromToken(token string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// SyncService stores uploaded batches.
type SyncService interface {
	Receive(ctx context.Context, userID string, items []models.Expense) (int64, error)
}

// Pinger reports backend health for /ping. May be nil.
type Pinger func(ctx context.Context) error

type Server struct {
	address         string
	shutdownTimeout time.Duration
	users           UserService
	sync            SyncService
	ping            Pinger
	logger          logging.Logger
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, us UserService, ss SyncService, ping Pinger) *Server {
	return &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		users:           us,
		sync:            ss,
		ping:            ping,
		logger:          l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
