package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"price-tracker/src/helpers"
	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Query Normalizer
// -----------------------------------------------------------------------------

// Normalizer validates raw key/value input and canonicalizes it into a stable
// cache key. Pure function of its input.
type Normalizer struct {
	DefaultLimit int
	MaxLimit     int
}

// -----------------------------------------------------------------------------

func NewNormalizer(defaultLimit, maxLimit int) *Normalizer {
	return &Normalizer{
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
	}
}

// -----------------------------------------------------------------------------

// Parse coerces a raw request into a validated MQuery.
//
// Invariants: at least one of model/id must be present. An explicit limit
// below 1 or not coercible to an integer is rejected; a limit above MaxLimit
// is clamped (bound policy: reject low, clamp high).
func (n *Normalizer) Parse(raw map[string]string) (*models.MQuery, error) {
	get := func(key string) string {
		return strings.TrimSpace(raw[key])
	}

	q := &models.MQuery{
		Model:    get("model"),
		Brand:    get("brand"),
		Storage:  get("storage"),
		Color:    get("color"),
		Supplier: get("supplier"),
		Limit:    n.DefaultLimit,
	}

	if idStr := get("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return nil, helpers.NewValidationError("invalid product id: %q", idStr)
		}
		q.ProductID = id
	}

	if limitStr := get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return nil, helpers.NewValidationError("invalid limit: %q", limitStr)
		}
		if limit > n.MaxLimit {
			limit = n.MaxLimit
		}
		q.Limit = limit
	}

	if q.Model == "" && q.ProductID == 0 {
		return nil, helpers.NewValidationError("at least one of model or id is required")
	}

	return q, nil
}

// -----------------------------------------------------------------------------

// CacheKey serializes a validated query in a fixed field order, so equivalent
// queries with parameters supplied in any order share one cache entry.
func CacheKey(q *models.MQuery) string {
	return fmt.Sprintf("model=%s|brand=%s|storage=%s|color=%s|supplier=%s|id=%d|limit=%d",
		strings.ToLower(q.Model),
		strings.ToLower(q.Brand),
		strings.ToLower(q.Storage),
		strings.ToLower(q.Color),
		strings.ToLower(q.Supplier),
		q.ProductID,
		q.Limit,
	)
}
