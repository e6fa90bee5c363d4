package resolver

import (
	"context"
	"sort"

	"price-tracker/src/helpers"
	"price-tracker/src/interfaces"
	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Product Matcher
// -----------------------------------------------------------------------------

// Matcher resolves a validated query to at most one catalog record.
type Matcher struct {
	Catalog interfaces.ICatalogReader
}

// -----------------------------------------------------------------------------

// Match returns the best-matching record, or nil when nothing satisfies the
// criteria. "No such product" is a normal outcome, not an error.
//
// Among all candidates satisfying the conjunction, the one with the most
// recent last-updated timestamp wins: fresher records better reflect current
// market listings, and the tie-break stabilizes results when several
// suppliers list near-identical variants.
func (m *Matcher) Match(ctx context.Context, q *models.MQuery) (*models.MProduct, error) {
	records, err := m.Catalog.FindMatches(ctx, q)
	if err != nil {
		return nil, helpers.NewCollaboratorError("catalog lookup failed", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastUpdated.After(records[j].LastUpdated)
	})

	best := records[0]
	return &best, nil
}
