package cli

import (
	"context"
	"fmt"
)

// Sync uploads all expenses in the background and reports the outcome.
func (a *App) Sync(ctx context.Context) error {
	fmt.Fprintln(a.out, "Syncing...")

	select {
	case res := <-a.syncer.SyncAsync(ctx):
		if res.Err != nil {
			fmt.Fprintln(a.out, "Sync failed")
			return nil
		}
		fmt.Fprintf(a.out, "Synced %d expense(s)\n", res.Count)
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
