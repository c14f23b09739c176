package client

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, username, password, email string) error
	Authenticate(ctx context.Context, username, password string) error
	UserProfile(ctx context.Context) (*models.UserProfile, error)
	// SyncExpenses uploads the whole snapshot in one request.
	SyncExpenses(ctx context.Context, snapshot []models.Expense) error
	// Logout forgets the session token.
	Logout()
}
