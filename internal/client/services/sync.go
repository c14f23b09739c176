package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// SnapshotSource provides the expenses to upload.
type SnapshotSource interface {
	Expenses(ctx context.Context) []models.Expense
}

type SyncService struct {
	client client.Client
	source SnapshotSource
	log    logging.Logger
}

func NewSyncService(c client.Client, source SnapshotSource, log logging.Logger) *SyncService {
	return &SyncService{client: c, source: source, log: log.With("component", "sync")}
}

// Sync reads a fresh snapshot and uploads it once. Failures match
// client.ErrSyncFailed and are logged.
func (s *SyncService) Sync(ctx context.Context) (int, error) {
	snapshot := s.source.Expenses(ctx)

	if err := s.client.SyncExpenses(ctx, snapshot); err != nil {
		s.log.Error(ctx, "sync failed", "count", len(snapshot), "error", err)
		return 0, fmt.Errorf("sync %d expenses: %w", len(snapshot), err)
	}

	s.log.Info(ctx, "sync complete", "count", len(snapshot))
	return len(snapshot), nil
}

// SyncResult is delivered on the channel returned by SyncAsync.
type SyncResult struct {
	Count int
	Err   error
}

// SyncAsync runs Sync in its own goroutine. The returned channel receives
// exactly one result and is then closed.
func (s *SyncService) SyncAsync(ctx context.Context) <-chan SyncResult {
	done := make(chan SyncResult, 1)
	go func() {
		defer close(done)
		n, err := s.Sync(ctx)
		done <- SyncResult{Count: n, Err: err}
	}()
	return done
}
