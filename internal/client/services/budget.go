package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/finkeeper/internal/money"
)

// BudgetService keeps the monthly budget in the settings table.
type BudgetService struct {
	settings settings.Repository
}

func NewBudgetService(repo settings.Repository) *BudgetService {
	return &BudgetService{settings: repo}
}

// Get returns the stored budget, or a zero budget if none was set.
func (s *BudgetService) Get(ctx context.Context) (models.Budget, error) {
	raw, err := s.settings.Get(ctx, settings.KeyBudget)
	if err != nil {
		return models.Budget{}, fmt.Errorf("load budget: %w", err)
	}
	if raw == nil {
		return models.Budget{}, nil
	}

	var b models.Budget
	if err := json.Unmarshal(raw, &b); err != nil {
		return models.Budget{}, fmt.Errorf("decode budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Set(ctx context.Context, b models.Budget) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode budget: %w", err)
	}
	if err := s.settings.Set(ctx, settings.KeyBudget, raw); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// Remaining is income minus the sum of allocations.
func (s *BudgetService) Remaining(ctx context.Context) (money.Money, error) {
	b, err := s.Get(ctx)
	if err != nil {
		return money.Money{}, err
	}
	return b.Remaining(), nil
}
