package models

import "github.com/dmitrijs2005/finkeeper/internal/money"

// Budget is the monthly plan: income and fixed allocations.
type Budget struct {
	Income        money.Money `json:"income"`
	Rent          money.Money `json:"rent"`
	Food          money.Money `json:"food"`
	Transport     money.Money `json:"transport"`
	Entertainment money.Money `json:"entertainment"`
}

// Allocated is the sum of all allocations.
func (b Budget) Allocated() money.Money {
	return money.Sum(b.Rent, b.Food, b.Transport, b.Entertainment)
}

// Remaining is income minus allocations. It may be negative.
func (b Budget) Remaining() money.Money {
	return b.Income.Sub(b.Allocated())
}
