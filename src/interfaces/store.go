package interfaces

import (
	"context"

	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// ICatalogReader provides field-filtered product lookup against the catalog.
// The catalog is owned by the ingestion pipeline; all access here is read-only.
// -----------------------------------------------------------------------------

type ICatalogReader interface {

	// FindMatches returns every catalog record satisfying the conjunction of
	// the query's supplied criteria: exact id match, case-insensitive
	// substring match on the other fields. Order is unspecified; the matcher
	// applies the recency tie-break itself.
	FindMatches(ctx context.Context, q *models.MQuery) ([]models.MProduct, error)
}

// -----------------------------------------------------------------------------
// IEventLogReader provides model+supplier-filtered, timestamp-ordered
// price-change events with a result-count limit.
// -----------------------------------------------------------------------------

type IEventLogReader interface {

	// FindPriceEvents returns events whose model and supplier contain the
	// given values (case-insensitive), ascending by event timestamp,
	// capped at limit.
	FindPriceEvents(ctx context.Context, model, supplier string, limit int) ([]models.MPriceEvent, error)
}

// -----------------------------------------------------------------------------
// IStore is the full storage contract: the two read views plus the schema
// bootstrap and the insert hooks used by the seed utility.
// -----------------------------------------------------------------------------

type IStore interface {
	ICatalogReader
	IEventLogReader

	// Initialize opens the connection and creates missing tables.
	Initialize() error

	// InsertProduct adds a catalog record (dev/seed only).
	InsertProduct(ctx context.Context, p *models.MProduct) error

	// InsertPriceEvent appends a price-change event (dev/seed only).
	InsertPriceEvent(ctx context.Context, ev *models.MPriceEvent) error

	// Close the database connection
	Close() error
}
