package models

import "time"

// MPricePoint is the unit of a price history series, either sourced from a
// real price-change event or synthesized.
type MPricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MPriceStatistics holds metrics derived from a history series.
// Never persisted, always recomputed.
type MPriceStatistics struct {
	MinPrice              float64 `json:"min_price"`
	MaxPrice              float64 `json:"max_price"`
	AvgPrice              float64 `json:"avg_price"`
	PriceChange           float64 `json:"price_change"`
	PriceChangePercentage float64 `json:"price_change_percentage"`
	Volatility            float64 `json:"volatility"`
}

// -----------------------------------------------------------------------------

// MPriceHistoryResult is the full resolution response and the unit cached.
// PriceHistory is non-empty and sorted ascending by timestamp.
type MPriceHistoryResult struct {
	Model        string           `json:"model"`
	Brand        string           `json:"brand"`
	Supplier     string           `json:"supplier"`
	Storage      string           `json:"storage"`
	Color        string           `json:"color"`
	CurrentPrice float64          `json:"current_price"`
	PriceHistory []MPricePoint    `json:"price_history"`
	Statistics   MPriceStatistics `json:"statistics"`
	Synthetic    bool             `json:"synthetic"`
	LastUpdated  time.Time        `json:"last_updated"`
}
