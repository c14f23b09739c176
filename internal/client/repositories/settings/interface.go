// Package settings is a key/value table for small pieces of local state such
// as the budget and the seeding marker.
package settings

import "context"

// Well-known keys.
const (
	KeyBudget = "budget"
	KeySeeded = "seeded"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
