package resolver

import (
	"context"

	"price-tracker/src/analysis"
	"price-tracker/src/interfaces"
	"price-tracker/src/logger"
	"price-tracker/src/models"

	"golang.org/x/sync/singleflight"
)

// -----------------------------------------------------------------------------
// Resolution Engine
// -----------------------------------------------------------------------------

// Engine is the single price-history resolution pipeline:
// normalize -> cache lookup -> match -> history -> statistics -> cache store.
//
// The cache is the only shared mutable state; concurrent cold misses on the
// same canonical key are coalesced through a singleflight group so only one
// request pays for the full resolution.
type Engine struct {
	Normalizer *Normalizer
	Matcher    *Matcher
	History    *HistoryResolver
	Cache      interfaces.IResultCache
	Logger     *logger.Logger

	// OnResolve, when set, receives every freshly computed (non-cached)
	// result. Used for the websocket push surface.
	OnResolve func(*models.MPriceHistoryResult)

	group singleflight.Group
}

// -----------------------------------------------------------------------------

func NewEngine(
	cfg *models.MConfig,
	catalog interfaces.ICatalogReader,
	events interfaces.IEventLogReader,
	resultCache interfaces.IResultCache,
	log *logger.Logger,
) *Engine {
	return &Engine{
		Normalizer: NewNormalizer(cfg.History.DefaultLimit, cfg.History.MaxLimit),
		Matcher:    &Matcher{Catalog: catalog},
		History: &HistoryResolver{
			Events:       events,
			Generator:    NewSyntheticGenerator(ParseSeedPolicy(cfg.History.SeedMode)),
			LookbackDays: cfg.History.LookbackDays,
		},
		Cache:  resultCache,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Resolve runs the full pipeline for a raw request.
//
// Returns (nil, nil) when no catalog record matches: an empty result is a
// normal outcome, distinct from a ValidationError (bad request) or a
// CollaboratorError (failed catalog/event-log read).
func (e *Engine) Resolve(ctx context.Context, raw map[string]string) (*models.MPriceHistoryResult, error) {
	q, err := e.Normalizer.Parse(raw)
	if err != nil {
		return nil, err
	}

	key := CacheKey(q)

	cached, ok, err := e.Cache.Get(ctx, key)
	if err != nil {
		// A broken cache degrades to recomputation, never to request failure.
		e.Logger.Warning("Cache read failed for %s: %v", key, err)
	} else if ok {
		return cached, nil
	}

	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		return e.resolveCold(ctx, q, key)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*models.MPriceHistoryResult), nil
}

// -----------------------------------------------------------------------------

// resolveCold performs the uncached pipeline for a validated query.
func (e *Engine) resolveCold(ctx context.Context, q *models.MQuery, key string) (interface{}, error) {
	rec, err := e.Matcher.Match(ctx, q)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// No-match results are not cached; the catalog entry may appear at
		// any moment.
		return nil, nil
	}

	points, synthetic, err := e.History.Resolve(ctx, rec, q.Limit)
	if err != nil {
		return nil, err
	}

	result := &models.MPriceHistoryResult{
		Model:        rec.Model,
		Brand:        rec.Brand,
		Supplier:     rec.Supplier,
		Storage:      rec.Storage,
		Color:        rec.Color,
		CurrentPrice: rec.CurrentPrice,
		PriceHistory: points,
		Statistics:   analysis.ComputePriceStatistics(rec.CurrentPrice, points),
		Synthetic:    synthetic,
		LastUpdated:  rec.LastUpdated,
	}

	if err := e.Cache.Set(ctx, key, result); err != nil {
		e.Logger.Warning("Cache write failed for %s: %v", key, err)
	}

	if e.OnResolve != nil {
		e.OnResolve(result)
	}

	return result, nil
}
