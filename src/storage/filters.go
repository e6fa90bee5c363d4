package storage

import (
	"fmt"
	"strings"

	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------

// buildMatchFilters renders the conjunction of a query's supplied criteria as
// a WHERE body plus its arguments. An exact match on id, case-insensitive
// substring match on everything else. numbered selects $n placeholders
// (postgres) over ? (sqlite).
func buildMatchFilters(q *models.MQuery, numbered bool) (string, []interface{}) {
	var conds []string
	var args []interface{}

	placeholder := func() string {
		if numbered {
			return fmt.Sprintf("$%d", len(args))
		}
		return "?"
	}

	if q.ProductID != 0 {
		args = append(args, q.ProductID)
		conds = append(conds, fmt.Sprintf("id = %s", placeholder()))
	}

	like := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, strings.ToLower(value))
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE '%%' || %s || '%%'", column, placeholder()))
	}

	like("model", q.Model)
	like("brand", q.Brand)
	like("storage", q.Storage)
	like("color", q.Color)
	like("supplier", q.Supplier)

	if len(conds) == 0 {
		// Normalizer rejects criteria-less queries; this keeps raw SQL valid
		// for direct callers anyway.
		return "1=1", nil
	}

	return strings.Join(conds, " AND "), args
}

// -----------------------------------------------------------------------------

func lower(s string) string {
	return strings.ToLower(s)
}
