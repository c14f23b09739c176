package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/money"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (id, created_at, amount_cents, category, notes)
			VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.CreatedAt.UnixNano(), e.Amount.Cents, e.Category, e.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := dbx.ExpectRowsAffected(res, 1); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Expense, error) {
	query := `SELECT id, created_at, amount_cents, category, notes
			FROM expenses ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		var (
			e     models.Expense
			nanos int64
			cents int64
		)
		if err := rows.Scan(&e.ID, &nanos, &cents, &e.Category, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		e.CreatedAt = time.Unix(0, nanos).UTC()
		e.Amount = money.FromCents(cents)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return n, nil
}
