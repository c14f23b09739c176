package expenses

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, e *models.Expense) error
	DeleteByID(ctx context.Context, id string) error
	// List returns all expenses ordered by creation time, oldest first.
	List(ctx context.Context) ([]models.Expense, error)
	Count(ctx context.Context) (int, error)
}
