// Package models defines client-side data models used by the finkeeper CLI.
package models

import (
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/money"
)

// Expense is one user-entered transaction. Records are never updated in
// place: changing a field means deleting and recreating the record.
type Expense struct {
	// ID is a uuid assigned when the record is created.
	ID string `json:"id"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"created_at"`

	// Amount is stored exactly as entered; zero and negative amounts are kept.
	Amount money.Money `json:"amount"`

	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// Preset categories offered by the add-expense prompt. Any other string is
// accepted as a free-form category.
var Categories = []string{
	"Food",
	"Transport",
	"Rent",
	"Entertainment",
	"Utilities",
	"Shopping",
	"Health",
	"Other",
}

// IsPresetCategory reports whether c is one of Categories.
func IsPresetCategory(c string) bool {
	for _, p := range Categories {
		if p == c {
			return true
		}
	}
	return false
}
