package resolver

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"price-tracker/src/analysis/core"
	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Synthetic History Generator
// -----------------------------------------------------------------------------

// Generation constants: 3% base volatility, 2% weekly pattern amplitude,
// hard +/-15% envelope around the current price.
const (
	syntheticVolatility = 0.03
	weeklyAmplitude     = 0.02
	envelopeBand        = 0.15
)

// SeedPolicy controls the generator's randomness contract.
//
// SeedDeterministic derives the seed from product id + calendar date, so
// repeated cold-cache resolutions of the same product on the same day produce
// bit-identical series. SeedEphemeral reseeds per call, so each cold
// resolution produces a fresh plausible series.
type SeedPolicy int

const (
	SeedDeterministic SeedPolicy = iota
	SeedEphemeral
)

// -----------------------------------------------------------------------------

// ParseSeedPolicy maps the config value; anything but "ephemeral" is the
// deterministic default.
func ParseSeedPolicy(mode string) SeedPolicy {
	if mode == "ephemeral" {
		return SeedEphemeral
	}
	return SeedDeterministic
}

// -----------------------------------------------------------------------------

// SyntheticGenerator manufactures a plausible bounded price history when too
// few real events exist to show a trend. Its output is not telemetry: only
// the endpoints are contractual (today's point equals the current price
// exactly, every point stays inside the envelope).
type SyntheticGenerator struct {
	Policy SeedPolicy

	// Injectable clock for tests
	Now func() time.Time
}

// -----------------------------------------------------------------------------

func NewSyntheticGenerator(policy SeedPolicy) *SyntheticGenerator {
	return &SyntheticGenerator{
		Policy: policy,
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// Generate produces daysBack+1 daily points, oldest first, ending at "today"
// with the final point forced to the current price. Cannot fail.
func (g *SyntheticGenerator) Generate(productID int64, currentPrice float64, daysBack int) []models.MPricePoint {
	if daysBack < 0 {
		daysBack = 0
	}

	now := g.Now().UTC()
	rng := g.rng(productID, now)

	low := currentPrice * (1 - envelopeBand)
	high := currentPrice * (1 + envelopeBand)

	points := make([]models.MPricePoint, 0, daysBack+1)
	for i := daysBack; i >= 1; i-- {
		deviate := rng.Float64()*2 - 1

		// Older days lean harder on the deviate; the sinusoidal term keeps
		// the series from looking like flat noise.
		weight := float64(i) / float64(daysBack)
		price := currentPrice * (1 +
			deviate*syntheticVolatility*weight +
			math.Sin(float64(i)/7)*weeklyAmplitude*weight)

		if price < low {
			price = low
		}
		if price > high {
			price = high
		}

		points = append(points, models.MPricePoint{
			Price:     core.RoundCents(price),
			Timestamp: now.AddDate(0, 0, -i),
		})
	}

	// Today's point is the current price exactly, never a draw.
	points = append(points, models.MPricePoint{
		Price:     currentPrice,
		Timestamp: now,
	})

	return points
}

// -----------------------------------------------------------------------------

func (g *SyntheticGenerator) rng(productID int64, now time.Time) *rand.Rand {
	if g.Policy == SeedEphemeral {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s", productID, now.Format("2006-01-02"))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
