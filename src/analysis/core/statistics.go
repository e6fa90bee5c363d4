package core

import "math"

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and standard deviation.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	// For single element, std = 0
	if len(data) == 1 {
		return mean, 0
	}

	// Standard deviation with N denominator (population std)
	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)))
	return mean, std
}

// -----------------------------------------------------------------------------

// CalculateMinMax returns the extrema of the series.
func CalculateMinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	min := math.MaxFloat64
	max := -math.MaxFloat64
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change against a base value.
func CalculateChangePercent(current, base float64) float64 {
	if base == 0 {
		return 0.0
	}
	return (current - base) / base * 100
}

// -----------------------------------------------------------------------------

// RoundCents rounds a price to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
