package interfaces

import (
	"context"

	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// IResultCache memoizes full resolutions keyed by the normalizer's canonical
// query key. Entries expire after a fixed TTL; an expired entry is a miss.
// -----------------------------------------------------------------------------

type IResultCache interface {

	// Get returns the cached result for key, or found=false on miss/expiry.
	Get(ctx context.Context, key string) (*models.MPriceHistoryResult, bool, error)

	// Set stores a freshly resolved result under key.
	Set(ctx context.Context, key string, value *models.MPriceHistoryResult) error

	// Flush drops every entry.
	Flush(ctx context.Context) error

	// Entries reports the current entry count (best effort for remote backends).
	Entries() int

	// Close releases backend resources
	Close() error
}
