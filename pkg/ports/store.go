package ports

import (
	"context"

	"github.com/aretw0/dateq/pkg/domain"
)

// ResultStore defines the interface for persisting search results.
// Searches over the same digits and options are deterministic, so a
// stored Result can be served in place of recomputation.
type ResultStore interface {
	// Save persists the result under the given cache key.
	Save(ctx context.Context, key string, result *domain.Result) error

	// Load retrieves the result for a given cache key.
	// Returns domain.ErrResultNotFound if no result is stored.
	Load(ctx context.Context, key string) (*domain.Result, error)

	// Delete removes the result for a given cache key.
	Delete(ctx context.Context, key string) error

	// List returns the cache keys currently stored.
	List(ctx context.Context) ([]string, error)
}
