package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"price-tracker/src/models"
)

func result(model string) *models.MPriceHistoryResult {
	return &models.MPriceHistoryResult{Model: model, CurrentPrice: 100}
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 1000, 0)
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatalf("empty cache returned a hit")
	}

	if err := c.Set(ctx, "k", result("Alpha-128")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Model != "Alpha-128" {
		t.Fatalf("got %+v", got)
	}

	// Overwrite supersedes
	c.Set(ctx, "k", result("Alpha-256"))
	got, _, _ = c.Get(ctx, "k")
	if got.Model != "Alpha-256" {
		t.Fatalf("overwrite lost: %+v", got)
	}
	if c.Entries() != 1 {
		t.Fatalf("entries: got %d, want 1", c.Entries())
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 1000, 0)
	ctx := context.Background()

	current := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set(ctx, "k", result("Alpha-128"))

	current = current.Add(5 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("entry at exactly TTL must still be served")
	}

	current = current.Add(time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("entry older than TTL must be a miss")
	}

	// Lazy expiry leaves the entry for the sweep
	if c.Entries() != 1 {
		t.Fatalf("expired entry removed eagerly, entries=%d", c.Entries())
	}
}

func TestMemoryCacheSweep(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 10, 0)
	ctx := context.Background()

	current := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	for i := 0; i < 10; i++ {
		c.Set(ctx, fmt.Sprintf("old-%d", i), result("x"))
	}

	// Everything above ages past the TTL; the write that crosses the
	// threshold triggers the sweep.
	current = current.Add(6 * time.Minute)
	c.Set(ctx, "fresh", result("y"))

	if c.Entries() != 1 {
		t.Fatalf("sweep left %d entries, want 1", c.Entries())
	}
	if _, ok, _ := c.Get(ctx, "fresh"); !ok {
		t.Fatalf("fresh entry swept")
	}
}

func TestMemoryCacheLRUCapacity(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 1000, 3)
	ctx := context.Background()

	c.Set(ctx, "a", result("a"))
	c.Set(ctx, "b", result("b"))
	c.Set(ctx, "c", result("c"))

	// Touch "a" so "b" becomes the eviction victim.
	c.Get(ctx, "a")
	c.Set(ctx, "d", result("d"))

	if c.Entries() != 3 {
		t.Fatalf("capacity not enforced, entries=%d", c.Entries())
	}
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Fatalf("least recently used entry survived")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok, _ := c.Get(ctx, k); !ok {
			t.Fatalf("entry %q evicted unexpectedly", k)
		}
	}
}

func TestMemoryCacheFlush(t *testing.T) {
	c := NewMemoryCache(5*time.Minute, 1000, 0)
	ctx := context.Background()

	c.Set(ctx, "a", result("a"))
	c.Set(ctx, "b", result("b"))

	if err := c.Flush(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Entries() != 0 {
		t.Fatalf("flush left %d entries", c.Entries())
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("flushed entry still served")
	}
}
