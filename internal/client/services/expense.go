package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/store"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/money"
)

type ExpenseService struct {
	store ExpenseStore
	log   logging.Logger
}

func NewExpenseService(s ExpenseStore, log logging.Logger) *ExpenseService {
	return &ExpenseService{store: s, log: log.With("component", "expenses")}
}

// Add records a new expense and saves it. An amount that does not parse is
// ignored: no record is created and (false, nil) is returned. Sign and range
// are not checked.
func (s *ExpenseService) Add(ctx context.Context, amountText, category, notes string) (bool, error) {
	amount, err := money.Parse(amountText)
	if err != nil {
		s.log.Debug(ctx, "ignoring non-numeric amount", "input", amountText)
		return false, nil
	}

	h := s.store.CreateExpense(store.ExpenseFields{
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Notes:    strings.TrimSpace(notes),
	})
	if err := s.store.Save(ctx); err != nil {
		return false, fmt.Errorf("add expense: %w", err)
	}

	s.log.Info(ctx, "expense added", "id", h.ID, "amount", amount.String(), "category", category)
	return true, nil
}

// List returns all expenses, oldest first.
func (s *ExpenseService) List(ctx context.Context) []models.Expense {
	return s.store.Expenses(ctx)
}

// Delete removes the expenses with the given ids and saves.
func (s *ExpenseService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	handles := make([]store.Handle, len(ids))
	for i, id := range ids {
		handles[i] = store.Handle{Kind: store.KindExpense, ID: id}
	}
	s.store.Delete(handles...)

	if err := s.store.Save(ctx); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	s.log.Info(ctx, "expenses deleted", "count", len(ids))
	return nil
}

// DeleteAll removes every expense and returns how many were removed.
func (s *ExpenseService) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.store.DeleteAll(ctx, store.KindExpense)
	if err != nil {
		return 0, fmt.Errorf("delete all expenses: %w", err)
	}
	if err := s.store.Save(ctx); err != nil {
		return 0, fmt.Errorf("delete all expenses: %w", err)
	}
	s.log.Info(ctx, "all expenses deleted", "count", n)
	return n, nil
}
