// Package expenses stores batches received through /syncExpenses.
package expenses

import (
	"context"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

type Repository interface {
	// InsertBatch appends items as one batch and returns the number of rows
	// written. Rows are never deduplicated. Large batches are split into
	// several statements, so callers wanting all-or-nothing should pass a
	// transaction.
	InsertBatch(ctx context.Context, batchID, userID string, items []models.Expense, receivedAt time.Time) (int64, error)
}
