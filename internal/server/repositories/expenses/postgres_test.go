package expenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/finkeeper/internal/money"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertPrefix = `(?s)^INSERT INTO synced_expenses \(batch_id,user_id,client_id,created_at,amount_cents,category,notes,received_at\) VALUES `

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var (
	t0    = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	batch = []models.Expense{
		{ID: "e1", CreatedAt: t0, Amount: money.FromCents(1250), Category: "Food", Notes: "lunch"},
		{ID: "e2", CreatedAt: t0.Add(time.Second), Amount: money.FromCents(-300), Category: "Other"},
	}
)

func TestInsertBatch_OneStatementForAllRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	recv := t0.Add(time.Hour)

	mock.ExpectExec(insertPrefix+`\(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\),\(\$9,\$10,\$11,\$12,\$13,\$14,\$15,\$16\)$`).
		WithArgs(
			"b1", "u1", "e1", t0, int64(1250), "Food", "lunch", recv,
			"b1", "u1", "e2", t0.Add(time.Second), int64(-300), "Other", "", recv,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.InsertBatch(context.Background(), "b1", "u1", batch, recv)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestInsertBatch_AnonymousBatchStoresNullUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertPrefix).
		WithArgs("b1", nil, "e1", t0, int64(1250), "Food", "lunch", t0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.InsertBatch(context.Background(), "b1", "", batch[:1], t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInsertBatch_EmptyIsNoop(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	n, err := repo.InsertBatch(context.Background(), "b1", "u1", nil, t0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertBatch_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(insertPrefix).WillReturnError(errors.New("db down"))

	_, err := repo.InsertBatch(context.Background(), "b1", "u1", batch, t0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestInsertBatch_SplitsIntoChunks(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	old := insertChunkSize
	insertChunkSize = 2
	t.Cleanup(func() { insertChunkSize = old })

	items := append(append([]models.Expense{}, batch...),
		models.Expense{ID: "e3", CreatedAt: t0, Amount: money.FromCents(99), Category: "Food"})

	mock.ExpectExec(insertPrefix+`\(\$1,.*\),\(\$9,.*\$16\)$`).
		WithArgs(
			"b1", "u1", "e1", t0, int64(1250), "Food", "lunch", t0,
			"b1", "u1", "e2", t0.Add(time.Second), int64(-300), "Other", "", t0,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(insertPrefix+`\(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\)$`).
		WithArgs("b1", "u1", "e3", t0, int64(99), "Food", "", t0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.InsertBatch(context.Background(), "b1", "u1", items, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestInsertBatch_ChunkErrorStopsEarly(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	old := insertChunkSize
	insertChunkSize = 1
	t.Cleanup(func() { insertChunkSize = old })

	mock.ExpectExec(insertPrefix).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertPrefix).WillReturnError(errors.New("too many parameters"))

	n, err := repo.InsertBatch(context.Background(), "b1", "u1", batch, t0)
	require.Error(t, err)
	assert.Equal(t, int64(1), n)
}
