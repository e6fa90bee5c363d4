package models

import "time"

// MProduct represents the catalog's current snapshot of a good.
// The catalog is owned by the ingestion pipeline; this service only reads it.
type MProduct struct {
	ID           int64     `json:"id"`
	Model        string    `json:"model"`
	Brand        string    `json:"brand"`
	Storage      string    `json:"storage"`
	Color        string    `json:"color"`
	Supplier     string    `json:"supplier"`
	CurrentPrice float64   `json:"current_price"`
	LastUpdated  time.Time `json:"last_updated"`
}

// -----------------------------------------------------------------------------

// MPriceEvent is an immutable, append-only price transition record
// for a model+supplier pair.
type MPriceEvent struct {
	Model     string    `json:"model"`
	Supplier  string    `json:"supplier"`
	NewPrice  float64   `json:"new_price"`
	CreatedAt time.Time `json:"created_at"`
}
