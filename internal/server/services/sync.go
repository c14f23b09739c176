package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Archiver keeps a raw copy of every received batch.
type Archiver interface {
	Archive(ctx context.Context, key string, body []byte) error
}

// Publisher announces stored batches to other consumers.
type Publisher interface {
	PublishExpensesSynced(ctx context.Context, ev SyncEvent) error
}

// SyncEvent is the payload of an expenses.synced message.
type SyncEvent struct {
	BatchID    string    `json:"batch_id"`
	UserID     string    `json:"user_id,omitempty"`
	Count      int64     `json:"count"`
	ArchiveKey string    `json:"archive_key,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

type SyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	archiver    Archiver
	publisher   Publisher
	log         logging.Logger

	now   func() time.Time
	newID func() string
}

// NewSyncService builds the service. archiver and publisher may be nil.
func NewSyncService(db *sql.DB, m repomanager.RepositoryManager, a Archiver, p Publisher, log logging.Logger) *SyncService {
	return &SyncService{
		db:          db,
		repomanager: m,
		archiver:    a,
		publisher:   p,
		log:         log.With("service", "sync"),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// ArchiveKey returns the object key a batch is archived under.
func ArchiveKey(batchID string, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("batches/%d/%02d/%02d/%s.json", at.Year(), at.Month(), at.Day(), batchID)
}

// Receive stores items as one batch in a single transaction and returns the
// number of rows written. userID is empty for anonymous uploads. Archive and
// publish failures are logged and do not fail the call.
func (s *SyncService) Receive(ctx context.Context, userID string, items []models.Expense) (int64, error) {
	batchID := s.newID()
	receivedAt := s.now().UTC()

	var n int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = s.repomanager.Expenses(tx).InsertBatch(ctx, batchID, userID, items, receivedAt)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("store batch: %w", err)
	}

	s.log.Info(ctx, "batch stored", "batch_id", batchID, "user_id", userID, "count", n)

	ev := SyncEvent{BatchID: batchID, UserID: userID, Count: n, ReceivedAt: receivedAt}
	if s.archiver != nil {
		key := ArchiveKey(batchID, receivedAt)
		if err := s.archive(ctx, key, items); err != nil {
			s.log.Error(ctx, "archive failed", "batch_id", batchID, "error", err)
		} else {
			ev.ArchiveKey = key
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishExpensesSynced(ctx, ev); err != nil {
			s.log.Error(ctx, "publish failed", "batch_id", batchID, "error", err)
		}
	}

	return n, nil
}

func (s *SyncService) archive(ctx context.Context, key string, items []models.Expense) error {
	if items == nil {
		items = []models.Expense{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	return s.archiver.Archive(ctx, key, body)
}
