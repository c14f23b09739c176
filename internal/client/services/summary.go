package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/money"
	"github.com/jinzhu/now"
)

// Period selects the window of a summary.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod accepts week, month, year or all; empty means month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

type CategoryTotal struct {
	Category string
	Amount   money.Money
	Count    int
}

type Overview struct {
	Period Period
	From   time.Time
	To     time.Time

	// Total covers all expenses regardless of period.
	Total money.Money
	// PeriodTotal covers expenses in [From, To].
	PeriodTotal money.Money
	PeriodCount int
	// ByCategory is sorted by amount descending, then by name.
	ByCategory []CategoryTotal

	Budget    models.Budget
	Remaining money.Money
}

type SummaryService struct {
	expenses ExpenseStore
	budget   *BudgetService
}

func NewSummaryService(expenses ExpenseStore, budget *BudgetService) *SummaryService {
	return &SummaryService{expenses: expenses, budget: budget}
}

func periodBounds(at time.Time, p Period) (time.Time, time.Time) {
	t := now.With(at)
	switch p {
	case PeriodWeek:
		return t.BeginningOfWeek(), t.EndOfWeek()
	case PeriodYear:
		return t.BeginningOfYear(), t.EndOfYear()
	case PeriodAll:
		return time.Time{}, time.Time{}
	default:
		return t.BeginningOfMonth(), t.EndOfMonth()
	}
}

// Overview summarizes expenses for the period containing at.
func (s *SummaryService) Overview(ctx context.Context, at time.Time, p Period) (*Overview, error) {
	from, to := periodBounds(at, p)
	o := &Overview{Period: p, From: from, To: to}

	byCat := map[string]*CategoryTotal{}
	for _, e := range s.expenses.Expenses(ctx) {
		o.Total = o.Total.Add(e.Amount)

		if p != PeriodAll {
			local := e.CreatedAt.In(at.Location())
			if local.Before(from) || local.After(to) {
				continue
			}
		}
		o.PeriodTotal = o.PeriodTotal.Add(e.Amount)
		o.PeriodCount++

		name := e.Category
		if name == "" {
			name = "Uncategorized"
		}
		ct, ok := byCat[name]
		if !ok {
			ct = &CategoryTotal{Category: name}
			byCat[name] = ct
		}
		ct.Amount = ct.Amount.Add(e.Amount)
		ct.Count++
	}

	o.ByCategory = make([]CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		o.ByCategory = append(o.ByCategory, *ct)
	}
	sort.Slice(o.ByCategory, func(i, j int) bool {
		a, b := o.ByCategory[i], o.ByCategory[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		return a.Category < b.Category
	})

	budget, err := s.budget.Get(ctx)
	if err != nil {
		return nil, err
	}
	o.Budget = budget
	o.Remaining = budget.Remaining()
	return o, nil
}
