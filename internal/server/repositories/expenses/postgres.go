package expenses

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// insertChunkSize keeps each statement well below the 65535 bind parameter
// limit of the Postgres protocol (8 parameters per row).
var insertChunkSize = 1000

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertBatch(ctx context.Context, batchID, userID string, items []models.Expense, receivedAt time.Time) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	var owner any
	if userID != "" {
		owner = userID
	}

	var total int64
	for start := 0; start < len(items); start += insertChunkSize {
		end := min(start+insertChunkSize, len(items))
		n, err := r.insertChunk(ctx, batchID, owner, items[start:end], receivedAt)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *PostgresRepository) insertChunk(ctx context.Context, batchID string, owner any, items []models.Expense, receivedAt time.Time) (int64, error) {
	q := psql.Insert("synced_expenses").
		Columns("batch_id", "user_id", "client_id", "created_at", "amount_cents", "category", "notes", "received_at")
	for _, e := range items {
		q = q.Values(batchID, owner, e.ID, e.CreatedAt, e.Amount.Cents, e.Category, e.Notes, receivedAt)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
