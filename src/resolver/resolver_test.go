package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"price-tracker/src/cache"
	"price-tracker/src/helpers"
	"price-tracker/src/logger"
	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type fakeCatalog struct {
	records []models.MProduct
	calls   int
	err     error
}

func (f *fakeCatalog) FindMatches(ctx context.Context, q *models.MQuery) ([]models.MProduct, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	match := func(field, want string) bool {
		return want == "" || strings.Contains(strings.ToLower(field), strings.ToLower(want))
	}

	var out []models.MProduct
	for _, r := range f.records {
		if q.ProductID != 0 && r.ID != q.ProductID {
			continue
		}
		if match(r.Model, q.Model) && match(r.Brand, q.Brand) &&
			match(r.Storage, q.Storage) && match(r.Color, q.Color) &&
			match(r.Supplier, q.Supplier) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEventLog struct {
	events []models.MPriceEvent
	calls  int
	err    error
}

func (f *fakeEventLog) FindPriceEvents(ctx context.Context, model, supplier string, limit int) ([]models.MPriceEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	var out []models.MPriceEvent
	for _, ev := range f.events {
		if strings.Contains(strings.ToLower(ev.Model), strings.ToLower(model)) &&
			strings.Contains(strings.ToLower(ev.Supplier), strings.ToLower(supplier)) {
			out = append(out, ev)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func testEngine(catalog *fakeCatalog, events *fakeEventLog, ttl time.Duration) *Engine {
	cfg := &models.MConfig{
		History: models.MHistoryConfig{
			LookbackDays: 30,
			DefaultLimit: 100,
			MaxLimit:     1000,
			SeedMode:     "deterministic",
		},
	}
	resultCache := cache.NewMemoryCache(ttl, 1000, 0)
	return NewEngine(cfg, catalog, events, resultCache, logger.NewLogger("test"))
}

func testProducts(now time.Time) []models.MProduct {
	return []models.MProduct{
		{ID: 1, Model: "Alpha-128", Brand: "Nordic", Storage: "128GB", Color: "Black", Supplier: "Acme", CurrentPrice: 499.99, LastUpdated: now},
		{ID: 2, Model: "Alpha-256", Brand: "Nordic", Storage: "256GB", Color: "Silver", Supplier: "Acme", CurrentPrice: 599.00, LastUpdated: now.Add(-2 * time.Hour)},
		{ID: 3, Model: "Beta-64", Brand: "Quark", Storage: "64GB", Color: "Blue", Supplier: "Globex", CurrentPrice: 249.50, LastUpdated: now.Add(-26 * time.Hour)},
	}
}

func alphaEvents(now time.Time) []models.MPriceEvent {
	prices := []float64{529.99, 519.99, 509.99, 514.99, 499.99}
	events := make([]models.MPriceEvent, len(prices))
	for i, p := range prices {
		events[i] = models.MPriceEvent{
			Model:     "Alpha-128",
			Supplier:  "Acme",
			NewPrice:  p,
			CreatedAt: now.Add(-time.Duration(len(prices)-i) * 24 * time.Hour),
		}
	}
	return events
}

// -----------------------------------------------------------------------------

func TestResolveRealHistory(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	events := &fakeEventLog{events: alphaEvents(now)}
	e := testEngine(catalog, events, 5*time.Minute)

	result, err := e.Resolve(context.Background(), map[string]string{"model": "alpha-128"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a result")
	}
	if result.Synthetic {
		t.Fatalf("5 recorded events must not trigger synthesis")
	}
	if len(result.PriceHistory) != 5 {
		t.Fatalf("got %d points, want 5", len(result.PriceHistory))
	}
	if result.PriceHistory[0].Price != 529.99 || result.PriceHistory[4].Price != 499.99 {
		t.Fatalf("series endpoints: %+v", result.PriceHistory)
	}
	if result.Statistics.MinPrice != 499.99 || result.Statistics.MaxPrice != 529.99 {
		t.Fatalf("stats extrema: %+v", result.Statistics)
	}
	if result.Statistics.PriceChange != result.CurrentPrice-529.99 {
		t.Fatalf("price change: %+v", result.Statistics)
	}
}

func TestResolveSyntheticFallback(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	// One lone event cannot show a trend
	events := &fakeEventLog{events: []models.MPriceEvent{
		{Model: "Beta-64", Supplier: "Globex", NewPrice: 259.00, CreatedAt: now.Add(-72 * time.Hour)},
	}}
	e := testEngine(catalog, events, 5*time.Minute)

	result, err := e.Resolve(context.Background(), map[string]string{"model": "beta-64"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.Synthetic {
		t.Fatalf("sparse history must synthesize, got %+v", result)
	}
	if len(result.PriceHistory) != 31 {
		t.Fatalf("got %d points, want 31 for a 30-day lookback", len(result.PriceHistory))
	}
	last := result.PriceHistory[30]
	if last.Price != 249.50 {
		t.Fatalf("final synthetic point must equal current price, got %v", last.Price)
	}
}

func TestResolveCacheHit(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	events := &fakeEventLog{events: alphaEvents(now)}
	e := testEngine(catalog, events, 5*time.Minute)

	raw := map[string]string{"model": "Alpha-128", "supplier": "acme"}
	first, err := e.Resolve(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same query, different casing: must be served from cache.
	second, err := e.Resolve(context.Background(), map[string]string{"model": "ALPHA-128", "supplier": "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catalog.calls != 1 || events.calls != 1 {
		t.Fatalf("collaborators hit on warm cache: catalog=%d events=%d", catalog.calls, events.calls)
	}
	if first != second {
		t.Fatalf("expected the cached result instance")
	}
}

func TestResolveExpiredEntryRecomputes(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	events := &fakeEventLog{events: alphaEvents(now)}
	e := testEngine(catalog, events, time.Millisecond)

	raw := map[string]string{"model": "alpha-128"}
	if _, err := e.Resolve(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := e.Resolve(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.calls != 2 {
		t.Fatalf("expired entry must recompute, catalog calls = %d", catalog.calls)
	}
}

func TestResolveNoMatch(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	events := &fakeEventLog{}
	e := testEngine(catalog, events, 5*time.Minute)

	raw := map[string]string{"model": "does-not-exist"}
	result, err := e.Resolve(context.Background(), raw)
	if err != nil {
		t.Fatalf("no-match must not be an error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}

	// Empty outcomes are not cached.
	if _, err := e.Resolve(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.calls != 2 {
		t.Fatalf("no-match cached unexpectedly, catalog calls = %d", catalog.calls)
	}
}

func TestResolveRecencyTieBreak(t *testing.T) {
	now := time.Now().UTC()
	catalog := &fakeCatalog{records: testProducts(now)}
	events := &fakeEventLog{events: alphaEvents(now)}
	e := testEngine(catalog, events, 5*time.Minute)

	// "alpha" matches both Alpha-128 and Alpha-256; the fresher one wins.
	result, err := e.Resolve(context.Background(), map[string]string{"model": "alpha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.Model != "Alpha-128" {
		t.Fatalf("expected most recently updated record, got %+v", result)
	}
}

func TestResolveCollaboratorError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	e := testEngine(catalog, &fakeEventLog{}, 5*time.Minute)

	_, err := e.Resolve(context.Background(), map[string]string{"model": "alpha"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var ce *helpers.CollaboratorError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CollaboratorError, got %T: %v", err, err)
	}
	var ve *helpers.ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("collaborator failure must not look like a bad request")
	}
}

func TestResolveValidationError(t *testing.T) {
	catalog := &fakeCatalog{}
	e := testEngine(catalog, &fakeEventLog{}, 5*time.Minute)

	_, err := e.Resolve(context.Background(), map[string]string{"limit": "10"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var ve *helpers.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if catalog.calls != 0 {
		t.Fatalf("invalid input must not reach the catalog")
	}
}
