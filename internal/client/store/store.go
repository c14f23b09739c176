package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/expenses"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/money"
	"github.com/google/uuid"
)

// Kind names a record collection.
type Kind string

const (
	KindExpense    Kind = "expense"
	KindCredential Kind = "credential"
)

// Handle identifies a record inside the store.
type Handle struct {
	Kind Kind
	ID   string
}

// ExpenseFields are the user-supplied parts of an expense.
type ExpenseFields struct {
	Amount   money.Money
	Category string
	Notes    string
}

// CredentialFields are the parts of a credential known at sign-up.
type CredentialFields struct {
	Username     string
	Email        string
	PasswordHash []byte
	Salt         []byte
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

type Store struct {
	db  *sql.DB
	log logging.Logger

	now   func() time.Time
	newID func() string

	mu              sync.Mutex
	pendingExpenses []models.Expense
	pendingCreds    []models.Credential
	deletes         map[Handle]struct{}

	subMu   sync.Mutex
	subs    map[int]func([]Kind)
	nextSub int
}

func New(db *sql.DB, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		db:      db,
		log:     log.With("component", "store"),
		now:     time.Now,
		newID:   uuid.NewString,
		deletes: make(map[Handle]struct{}),
		subs:    make(map[int]func([]Kind)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateExpense allocates a new expense. It is not durable until Save.
func (s *Store) CreateExpense(f ExpenseFields) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := models.Expense{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Amount:    f.Amount,
		Category:  f.Category,
		Notes:     f.Notes,
	}
	s.pendingExpenses = append(s.pendingExpenses, e)
	return Handle{Kind: KindExpense, ID: e.ID}
}

// CreateCredential allocates a new credential. It is not durable until Save.
func (s *Store) CreateCredential(f CredentialFields) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Credential{
		ID:           s.newID(),
		Username:     f.Username,
		Email:        f.Email,
		PasswordHash: slices.Clone(f.PasswordHash),
		Salt:         slices.Clone(f.Salt),
		CreatedAt:    s.now().UTC(),
	}
	s.pendingCreds = append(s.pendingCreds, c)
	return Handle{Kind: KindCredential, ID: c.ID}
}

// Expenses returns all expenses, oldest first. Records created in the same
// instant keep their creation order.
func (s *Store) Expenses(ctx context.Context) []models.Expense {
	durable, err := expenses.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load expenses", "error", err)
		return []models.Expense{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Expense, 0, len(durable)+len(s.pendingExpenses))
	for _, e := range durable {
		if !s.isDeleted(KindExpense, e.ID) {
			result = append(result, e)
		}
	}
	result = append(result, s.pendingExpenses...)

	slices.SortStableFunc(result, func(a, b models.Expense) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result
}

// Credentials returns all credentials, oldest first.
func (s *Store) Credentials(ctx context.Context) []models.Credential {
	durable, err := credentials.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load credentials", "error", err)
		return []models.Credential{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Credential, 0, len(durable)+len(s.pendingCreds))
	for _, c := range durable {
		if !s.isDeleted(KindCredential, c.ID) {
			result = append(result, c)
		}
	}
	for _, c := range s.pendingCreds {
		c.PasswordHash = slices.Clone(c.PasswordHash)
		c.Salt = slices.Clone(c.Salt)
		result = append(result, c)
	}

	slices.SortStableFunc(result, func(a, b models.Credential) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result
}

// FindCredential returns the newest credential for username, preferring
// unsaved ones, or nil when there is none.
func (s *Store) FindCredential(ctx context.Context, username string) *models.Credential {
	s.mu.Lock()
	for i := len(s.pendingCreds) - 1; i >= 0; i-- {
		if c := s.pendingCreds[i]; c.Username == username {
			c.PasswordHash = slices.Clone(c.PasswordHash)
			c.Salt = slices.Clone(c.Salt)
			s.mu.Unlock()
			return &c
		}
	}
	s.mu.Unlock()

	c, err := credentials.NewSQLiteRepository(s.db).FindByUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		s.log.Error(ctx, "failed to find credential", "error", err)
		return nil
	}

	s.mu.Lock()
	deleted := s.isDeleted(KindCredential, c.ID)
	s.mu.Unlock()
	if !deleted {
		return c
	}

	// The newest saved one is pending removal; look at older ones.
	creds := s.Credentials(ctx)
	for i := len(creds) - 1; i >= 0; i-- {
		if creds[i].Username == username {
			return &creds[i]
		}
	}
	return nil
}

func (s *Store) isDeleted(k Kind, id string) bool {
	_, ok := s.deletes[Handle{Kind: k, ID: id}]
	return ok
}

// Delete marks records for removal. Pending creates are dropped right away;
// durable records disappear from reads now and from disk on Save.
func (s *Store) Delete(handles ...Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range handles {
		switch h.Kind {
		case KindExpense:
			if i := slices.IndexFunc(s.pendingExpenses, func(e models.Expense) bool { return e.ID == h.ID }); i >= 0 {
				s.pendingExpenses = slices.Delete(s.pendingExpenses, i, i+1)
				continue
			}
		case KindCredential:
			if i := slices.IndexFunc(s.pendingCreds, func(c models.Credential) bool { return c.ID == h.ID }); i >= 0 {
				s.pendingCreds = slices.Delete(s.pendingCreds, i, i+1)
				continue
			}
		default:
			continue
		}
		s.deletes[h] = struct{}{}
	}
}

// DeleteAll marks every record of kind for removal and returns how many
// records were marked.
func (s *Store) DeleteAll(ctx context.Context, kind Kind) (int, error) {
	var handles []Handle
	switch kind {
	case KindExpense:
		list, err := expenses.NewSQLiteRepository(s.db).List(ctx)
		if err != nil {
			return 0, err
		}
		for _, e := range list {
			handles = append(handles, Handle{Kind: kind, ID: e.ID})
		}
		s.mu.Lock()
		for _, e := range s.pendingExpenses {
			handles = append(handles, Handle{Kind: kind, ID: e.ID})
		}
		s.mu.Unlock()
	case KindCredential:
		list, err := credentials.NewSQLiteRepository(s.db).List(ctx)
		if err != nil {
			return 0, err
		}
		for _, c := range list {
			handles = append(handles, Handle{Kind: kind, ID: c.ID})
		}
		s.mu.Lock()
		for _, c := range s.pendingCreds {
			handles = append(handles, Handle{Kind: kind, ID: c.ID})
		}
		s.mu.Unlock()
	default:
		return 0, fmt.Errorf("unknown kind %q: %w", kind, common.ErrorValidation)
	}

	s.Delete(handles...)
	return len(handles), nil
}

// HasChanges reports whether there is anything for Save to write.
func (s *Store) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pendingExpenses)+len(s.pendingCreds)+len(s.deletes) > 0
}

// Discard drops all pending changes.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingExpenses = nil
	s.pendingCreds = nil
	clear(s.deletes)
}

// Save writes pending creates and deletes in a single transaction. On error
// the transaction is rolled back and the pending changes stay in place.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()

	if len(s.pendingExpenses)+len(s.pendingCreds)+len(s.deletes) == 0 {
		s.mu.Unlock()
		return nil
	}

	changed := map[Kind]bool{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		expRepo := expenses.NewSQLiteRepository(tx)
		credRepo := credentials.NewSQLiteRepository(tx)

		for h := range s.deletes {
			var err error
			switch h.Kind {
			case KindExpense:
				err = expRepo.DeleteByID(ctx, h.ID)
			case KindCredential:
				err = credRepo.DeleteByID(ctx, h.ID)
			}
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			changed[h.Kind] = true
		}
		for i := range s.pendingExpenses {
			if err := expRepo.Insert(ctx, &s.pendingExpenses[i]); err != nil {
				return err
			}
			changed[KindExpense] = true
		}
		for i := range s.pendingCreds {
			if err := credRepo.Insert(ctx, &s.pendingCreds[i]); err != nil {
				return err
			}
			changed[KindCredential] = true
		}
		return nil
	})
	if err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "save failed, pending changes kept", "error", err)
		return fmt.Errorf("save: %w", err)
	}

	s.pendingExpenses = nil
	s.pendingCreds = nil
	clear(s.deletes)
	s.mu.Unlock()

	kinds := make([]Kind, 0, len(changed))
	for _, k := range []Kind{KindExpense, KindCredential} {
		if changed[k] {
			kinds = append(kinds, k)
		}
	}
	s.notify(kinds)
	return nil
}

// Subscribe registers fn to be called with the changed kinds after every
// successful Save. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(changed []Kind)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(kinds []Kind) {
	if len(kinds) == 0 {
		return
	}
	s.subMu.Lock()
	fns := make([]func([]Kind), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(kinds))
	}
}

// Settings returns a repository over the settings table of the store's
// database.
func (s *Store) Settings() settings.Repository {
	return settings.NewSQLiteRepository(s.db)
}
