package services

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/store"
)

// ExpenseStore is the part of the local store used for expenses.
type ExpenseStore interface {
	CreateExpense(f store.ExpenseFields) store.Handle
	Expenses(ctx context.Context) []models.Expense
	Delete(handles ...store.Handle)
	DeleteAll(ctx context.Context, kind store.Kind) (int, error)
	Save(ctx context.Context) error
}

// CredentialStore is the part of the local store used for credentials.
type CredentialStore interface {
	CreateCredential(f store.CredentialFields) store.Handle
	Credentials(ctx context.Context) []models.Credential
	FindCredential(ctx context.Context, username string) *models.Credential
	Delete(handles ...store.Handle)
	Save(ctx context.Context) error
}
