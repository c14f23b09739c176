package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	cur := t0
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *sql.DB) {
	t.Helper()
	db, err := OpenDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts = append([]Option{WithClock(stepClock(time.Second)), WithIDGenerator(seqIDs())}, opts...)
	return New(db, logging.Nop(), opts...), db
}

func ids(list []models.Expense) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func addN(s *Store, n int) []Handle {
	hs := make([]Handle, n)
	for i := range hs {
		hs[i] = s.CreateExpense(ExpenseFields{Amount: money.FromCents(int64(i * 100)), Category: "Food"})
	}
	return hs
}

func TestCreate_NRecordsFetchedInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	addN(s, 5)
	require.NoError(t, s.Save(ctx))

	list := s.Expenses(ctx)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.Before(list[i].CreatedAt))
	}
	assert.Equal(t, []string{"id-01", "id-02", "id-03", "id-04", "id-05"}, ids(list))
}

func TestCreate_SameInstantKeepsCreationOrder(t *testing.T) {
	s, _ := newTestStore(t, WithClock(func() time.Time { return t0 }))
	ctx := context.Background()

	addN(s, 3)
	assert.Equal(t, []string{"id-01", "id-02", "id-03"}, ids(s.Expenses(ctx)))

	require.NoError(t, s.Save(ctx))
	addN(s, 1)
	assert.Equal(t, []string{"id-01", "id-02", "id-03", "id-04"}, ids(s.Expenses(ctx)))
}

func TestCreate_FieldsStoredAsIs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	h := s.CreateExpense(ExpenseFields{Amount: money.FromCents(-999), Category: "", Notes: "refund"})
	assert.Equal(t, Handle{Kind: KindExpense, ID: "id-01"}, h)
	require.NoError(t, s.Save(ctx))

	list := s.Expenses(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, models.Expense{ID: "id-01", CreatedAt: t0, Amount: money.FromCents(-999), Notes: "refund"}, list[0])
}

func TestPendingVisibleButNotDurableUntilSave(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	addN(s, 2)
	assert.Len(t, s.Expenses(ctx), 2)
	assert.Empty(t, New(db, logging.Nop()).Expenses(ctx))

	require.NoError(t, s.Save(ctx))
	assert.Len(t, New(db, logging.Nop()).Expenses(ctx), 2)
	assert.False(t, s.HasChanges())
}

func TestDelete_KeepsOthersAndOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	hs := addN(s, 4)
	require.NoError(t, s.Save(ctx))
	before := s.Expenses(ctx)

	s.Delete(hs[1])
	assert.Equal(t, []string{"id-01", "id-03", "id-04"}, ids(s.Expenses(ctx)))

	require.NoError(t, s.Save(ctx))
	after := s.Expenses(ctx)
	assert.Equal(t, []models.Expense{before[0], before[2], before[3]}, after)
}

func TestDelete_PendingCreateNeverHitsDisk(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	hs := addN(s, 2)
	s.Delete(hs[0])
	require.NoError(t, s.Save(ctx))

	assert.Equal(t, []string{"id-02"}, ids(New(db, logging.Nop()).Expenses(ctx)))
}

func TestDelete_UnknownHandleIsHarmless(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	addN(s, 1)
	require.NoError(t, s.Save(ctx))

	s.Delete(Handle{Kind: KindExpense, ID: "missing"}, Handle{Kind: "bogus", ID: "id-01"})
	require.NoError(t, s.Save(ctx))
	assert.Len(t, s.Expenses(ctx), 1)
}

func TestDeleteAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	addN(s, 3)
	require.NoError(t, s.Save(ctx))
	addN(s, 2)

	n, err := s.DeleteAll(ctx, KindExpense)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Empty(t, s.Expenses(ctx))

	require.NoError(t, s.Save(ctx))
	assert.Empty(t, s.Expenses(ctx))

	_, err = s.DeleteAll(ctx, "bogus")
	assert.Error(t, err)
}

func TestSave_FailureKeepsPendingChanges(t *testing.T) {
	s, _ := newTestStore(t, WithIDGenerator(func() string { return "dup" }))
	ctx := context.Background()

	s.CreateExpense(ExpenseFields{Amount: money.FromCents(1)})
	require.NoError(t, s.Save(ctx))

	s.CreateExpense(ExpenseFields{Amount: money.FromCents(2)})
	err := s.Save(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save")
	assert.True(t, s.HasChanges())

	durable := New(s.db, logging.Nop()).Expenses(ctx)
	require.Len(t, durable, 1)
	assert.Equal(t, int64(1), durable[0].Amount.Cents)

	s.Discard()
	assert.False(t, s.HasChanges())
	require.NoError(t, s.Save(ctx))
}

func TestSave_NoChangesIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	called := false
	s.Subscribe(func([]Kind) { called = true })

	require.NoError(t, s.Save(context.Background()))
	assert.False(t, called)
}

func TestExpenses_StorageErrorYieldsEmpty(t *testing.T) {
	s, db := newTestStore(t)
	addN(s, 2)
	require.NoError(t, db.Close())

	list := s.Expenses(context.Background())
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Empty(t, s.Credentials(context.Background()))
}

func TestSubscribe_NotifiedAfterSave(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var got [][]Kind
	cancel := s.Subscribe(func(k []Kind) { got = append(got, k) })

	addN(s, 1)
	require.NoError(t, s.Save(ctx))
	s.CreateCredential(CredentialFields{Username: "u", PasswordHash: []byte{1}, Salt: []byte{2}})
	s.Delete(Handle{Kind: KindExpense, ID: "id-01"})
	require.NoError(t, s.Save(ctx))

	cancel()
	addN(s, 1)
	require.NoError(t, s.Save(ctx))

	assert.Equal(t, [][]Kind{{KindExpense}, {KindExpense, KindCredential}}, got)
}

func TestCredentials_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	hash := []byte{1, 2, 3}
	h := s.CreateCredential(CredentialFields{Username: "alice", Email: "a@x", PasswordHash: hash, Salt: []byte{4}})
	hash[0] = 9

	require.NoError(t, s.Save(ctx))
	creds := s.Credentials(ctx)
	require.Len(t, creds, 1)
	assert.Equal(t, h.ID, creds[0].ID)
	assert.Equal(t, "alice", creds[0].Username)
	assert.Equal(t, []byte{1, 2, 3}, creds[0].PasswordHash)
	assert.Equal(t, t0, creds[0].CreatedAt)

	s.Delete(h)
	require.NoError(t, s.Save(ctx))
	assert.Empty(t, s.Credentials(ctx))
}

func TestFindCredential_NewestWinsAndSkipsDeleted(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Nil(t, s.FindCredential(ctx, "alice"))

	old := s.CreateCredential(CredentialFields{Username: "alice", Email: "old@x", PasswordHash: []byte{1}, Salt: []byte{1}})
	s.CreateCredential(CredentialFields{Username: "bob", PasswordHash: []byte{2}, Salt: []byte{2}})
	require.NoError(t, s.Save(ctx))

	c := s.FindCredential(ctx, "alice")
	require.NotNil(t, c)
	assert.Equal(t, "old@x", c.Email)

	newer := s.CreateCredential(CredentialFields{Username: "alice", Email: "new@x", PasswordHash: []byte{3}, Salt: []byte{3}})
	c = s.FindCredential(ctx, "alice")
	require.NotNil(t, c)
	assert.Equal(t, newer.ID, c.ID)

	require.NoError(t, s.Save(ctx))
	s.Delete(newer)
	c = s.FindCredential(ctx, "alice")
	require.NotNil(t, c)
	assert.Equal(t, old.ID, c.ID)

	s.Delete(old)
	assert.Nil(t, s.FindCredential(ctx, "alice"))
}
