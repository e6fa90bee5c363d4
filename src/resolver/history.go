package resolver

import (
	"context"

	"price-tracker/src/helpers"
	"price-tracker/src/interfaces"
	"price-tracker/src/models"
)

// MinRealEvents is the threshold below which the recorded history is too
// sparse to show a trend and a synthetic series is manufactured instead.
const MinRealEvents = 2

// -----------------------------------------------------------------------------
// History Resolver
// -----------------------------------------------------------------------------

// HistoryResolver assembles the price series for a matched record: real
// price-change events when enough exist, a synthetic backstory otherwise.
type HistoryResolver struct {
	Events       interfaces.IEventLogReader
	Generator    *SyntheticGenerator
	LookbackDays int
}

// -----------------------------------------------------------------------------

// Resolve returns an ordered, non-empty series plus a flag marking synthetic
// output. A single recorded event cannot convey direction or volatility, so
// rather than returning a degenerate chart the generator takes over; callers
// must not treat synthesized points as ground truth telemetry.
func (r *HistoryResolver) Resolve(ctx context.Context, rec *models.MProduct, limit int) ([]models.MPricePoint, bool, error) {
	events, err := r.Events.FindPriceEvents(ctx, rec.Model, rec.Supplier, limit)
	if err != nil {
		return nil, false, helpers.NewCollaboratorError("event log lookup failed", err)
	}

	if len(events) >= MinRealEvents {
		points := make([]models.MPricePoint, len(events))
		for i, ev := range events {
			points[i] = models.MPricePoint{
				Price:     ev.NewPrice,
				Timestamp: ev.CreatedAt,
			}
		}
		return points, false, nil
	}

	return r.Generator.Generate(rec.ID, rec.CurrentPrice, r.LookbackDays), true, nil
}
