package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/money"
)

func (a *App) Budget(ctx context.Context) error {
	b, err := a.budget.Get(ctx)
	if err != nil {
		return err
	}
	return a.printBudget(b)
}

func (a *App) printBudget(b models.Budget) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Income\t%s\t\n", b.Income)
	fmt.Fprintf(tw, "Rent\t%s\t\n", b.Rent)
	fmt.Fprintf(tw, "Food\t%s\t\n", b.Food)
	fmt.Fprintf(tw, "Transport\t%s\t\n", b.Transport)
	fmt.Fprintf(tw, "Entertainment\t%s\t\n", b.Entertainment)
	fmt.Fprintf(tw, "Remaining\t%s\t\n", b.Remaining())
	return tw.Flush()
}

// SetBudget updates the budget. Usage:
// setbudget <income> <rent> <food> <transport> <entertainment>; without
// arguments every value is prompted for, and an empty answer keeps the
// current value.
func (a *App) SetBudget(ctx context.Context, args []string) error {
	b, err := a.budget.Get(ctx)
	if err != nil {
		return err
	}

	fields := []struct {
		name string
		dst  *money.Money
	}{
		{"Income", &b.Income},
		{"Rent", &b.Rent},
		{"Food", &b.Food},
		{"Transport", &b.Transport},
		{"Entertainment", &b.Entertainment},
	}

	if len(args) > 0 && len(args) != len(fields) {
		fmt.Fprintln(a.out, "Usage: setbudget <income> <rent> <food> <transport> <entertainment>")
		return nil
	}

	for i, f := range fields {
		var text string
		if len(args) > 0 {
			text = args[i]
		} else {
			text, err = getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.name, *f.dst), a.out)
			if err != nil {
				return err
			}
			if text == "" {
				continue
			}
		}
		v, err := money.Parse(text)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid amount for %s: %q\n", f.name, text)
			return nil
		}
		*f.dst = v
	}

	if err := a.budget.Set(ctx, b); err != nil {
		return err
	}
	return a.printBudget(b)
}

// Summary prints totals for a period. Usage: summary [week|month|year|all].
func (a *App) Summary(ctx context.Context, args []string) error {
	var p string
	if len(args) > 0 {
		p = args[0]
	}
	period, err := services.ParsePeriod(p)
	if err != nil {
		return err
	}

	o, err := a.summary.Overview(ctx, a.clock(), period)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Total spent:        %s\n", o.Total)
	if period == services.PeriodAll {
		fmt.Fprintf(a.out, "Expenses:           %d\n", o.PeriodCount)
	} else {
		fmt.Fprintf(a.out, "This %s: %s (%d expenses)\n", period, o.PeriodTotal, o.PeriodCount)
	}
	fmt.Fprintf(a.out, "Budget remaining:   %s\n", o.Remaining)

	if len(o.ByCategory) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Category\tAmount\tCount\t")
	for _, c := range o.ByCategory {
		fmt.Fprintf(tw, "%s\t%s\t%d\t\n", c.Category, c.Amount, c.Count)
	}
	return tw.Flush()
}
