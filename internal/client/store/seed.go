package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/expenses"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/money"
)

// SeedExpenses are the example records written into a fresh database.
var SeedExpenses = []ExpenseFields{
	{Amount: money.MustParse("1200.00"), Category: "Rent", Notes: "Monthly rent"},
	{Amount: money.MustParse("45.20"), Category: "Food", Notes: "Groceries"},
	{Amount: money.MustParse("30.00"), Category: "Transport", Notes: "Bus pass"},
	{Amount: money.MustParse("18.50"), Category: "Entertainment", Notes: "Cinema"},
}

// Seed writes SeedExpenses if the expense collection has never held any
// records. It reports whether seeding happened. Once the collection has
// been observed non-empty, or after a successful seed, Seed is a no-op.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	settingsRepo := settings.NewSQLiteRepository(s.db)

	marker, err := settingsRepo.Get(ctx, settings.KeySeeded)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if marker != nil {
		return false, nil
	}

	n, err := expenses.NewSQLiteRepository(s.db).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	s.mu.Lock()
	pending := len(s.pendingExpenses)
	s.mu.Unlock()

	if n+pending > 0 {
		if err := settingsRepo.Set(ctx, settings.KeySeeded, []byte("0")); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
		return false, nil
	}

	base := s.now().UTC()
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := expenses.NewSQLiteRepository(tx)
		for i, f := range SeedExpenses {
			e := &models.Expense{
				ID:        s.newID(),
				CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
				Amount:    f.Amount,
				Category:  f.Category,
				Notes:     f.Notes,
			}
			if err := repo.Insert(ctx, e); err != nil {
				return err
			}
		}
		return settings.NewSQLiteRepository(tx).Set(ctx, settings.KeySeeded, []byte("1"))
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	s.log.Info(ctx, "seeded example expenses", "count", len(SeedExpenses))
	s.notify([]Kind{KindExpense})
	return true, nil
}
