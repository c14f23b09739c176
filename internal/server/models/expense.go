package models

import (
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/money"
)

// Expense is the wire shape of one record in a /syncExpenses batch.
type Expense struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Amount    money.Money `json:"amount"`
	Category  string      `json:"category"`
	Notes     string      `json:"notes"`
}

// SyncedExpense is an Expense as stored after a sync. UserID is empty when
// the batch arrived without a valid session token.
type SyncedExpense struct {
	BatchID    string
	UserID     string
	Expense    Expense
	ReceivedAt time.Time
}
