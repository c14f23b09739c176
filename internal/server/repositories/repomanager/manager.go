package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Expenses(db dbx.DBTX) expenses.Repository
}
