package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// Add records an expense. Usage: add [amount [category [notes...]]]; missing
// parts are prompted for. A category may be given by its number from
// "categories".
func (a *App) Add(ctx context.Context, args []string) error {
	var amount, category, notes string
	var err error

	if len(args) > 0 {
		amount = args[0]
	} else if amount, err = getSimpleText(a.reader, "Amount", a.out); err != nil {
		return err
	}

	if len(args) > 1 {
		category = args[1]
	} else if category, err = getSimpleText(a.reader, "Category ("+strings.Join(models.Categories, ", ")+")", a.out); err != nil {
		return err
	}
	category = resolveCategory(category)

	if len(args) > 2 {
		notes = strings.Join(args[2:], " ")
	} else if len(args) == 0 {
		if notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
			return err
		}
	}

	added, err := a.expenses.Add(ctx, amount, category, notes)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(a.out, "Expense added")
	}
	return nil
}

// resolveCategory maps "1".."N" to the preset list and fixes the case of
// preset names; anything else is kept as typed.
func resolveCategory(c string) string {
	c = strings.TrimSpace(c)
	if n, err := strconv.Atoi(c); err == nil && n >= 1 && n <= len(models.Categories) {
		return models.Categories[n-1]
	}
	if models.IsPresetCategory(c) {
		return c
	}
	for _, p := range models.Categories {
		if strings.EqualFold(p, c) {
			return p
		}
	}
	return c
}

func (a *App) List(ctx context.Context) error {
	list := a.expenses.List(ctx)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No expenses yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDate\tAmount\tCategory\tNotes\tID\t")
	for i, e := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1, e.CreatedAt.Local().Format(common.DisplayDateLayout), e.Amount, e.Category, e.Notes, shortID(e.ID))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Delete removes expenses given by list number or (prefix of) ID. A number
// that is not a valid list position is tried as an ID prefix.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <#|id> [<#|id>...]")
		return nil
	}

	list := a.expenses.List(ctx)
	var ids []string
	for _, arg := range args {
		id, ok := resolveExpense(list, arg)
		if !ok {
			fmt.Fprintln(a.out, "No such expense:", arg)
			return nil
		}
		ids = append(ids, id)
	}

	if err := a.expenses.Delete(ctx, ids...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d expense(s)\n", len(ids))
	return nil
}

// resolveExpense takes ref as a list number when it is one in range, and
// otherwise as a unique ID prefix, so "12" still finds ID "12ab..." in a
// shorter list.
func resolveExpense(list []models.Expense, ref string) (string, bool) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(list) {
		return list[n-1].ID, true
	}

	var match string
	for _, e := range list {
		if strings.HasPrefix(e.ID, ref) {
			if match != "" {
				return "", false
			}
			match = e.ID
		}
	}
	return match, match != ""
}

func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL expenses? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	n, err := a.expenses.DeleteAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d expense(s)\n", n)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	for i, c := range models.Categories {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, c)
	}
	return nil
}
