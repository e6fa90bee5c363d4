package analysis

import (
	"price-tracker/src/analysis/core"
	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Statistics Calculator
// -----------------------------------------------------------------------------

// ComputePriceStatistics derives aggregate metrics from a resolved history
// and the record's current price. Pure computation, no I/O.
//
// Volatility is the population standard deviation of the series expressed as
// a percentage of its mean; the change metrics compare the current price to
// the oldest point. Division-by-zero cases collapse to 0.
func ComputePriceStatistics(currentPrice float64, history []models.MPricePoint) models.MPriceStatistics {
	if len(history) == 0 {
		// Guarded by the non-empty history invariant; keep a sane zero value
		// for direct construction.
		return models.MPriceStatistics{}
	}

	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}

	min, max := core.CalculateMinMax(prices)
	mean, std := core.CalculateMeanStd(prices)

	first := history[0].Price
	change := currentPrice - first

	volatility := 0.0
	if mean != 0 {
		volatility = std / mean * 100
	}

	return models.MPriceStatistics{
		MinPrice:              min,
		MaxPrice:              max,
		AvgPrice:              mean,
		PriceChange:           change,
		PriceChangePercentage: core.CalculateChangePercent(currentPrice, first),
		Volatility:            volatility,
	}
}
