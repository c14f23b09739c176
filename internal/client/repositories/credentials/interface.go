// Package credentials stores the hashed local copies of signed-up accounts.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, c *models.Credential) error
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Credential, error)
	// FindByUsername returns the most recent credential for username, or
	// common.ErrorNotFound.
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
}
