package models

// MQuery is a validated price-history lookup request.
// A zero ProductID means "not supplied"; string fields are trimmed but keep
// their original casing (matching lowercases on its side).
type MQuery struct {
	Model     string `json:"model"`
	Brand     string `json:"brand"`
	Storage   string `json:"storage"`
	Color     string `json:"color"`
	Supplier  string `json:"supplier"`
	ProductID int64  `json:"product_id"`
	Limit     int    `json:"limit"`
}

// -----------------------------------------------------------------------------

// HasCriteria reports whether any matching criterion is present.
func (q *MQuery) HasCriteria() bool {
	return q.Model != "" || q.Brand != "" || q.Storage != "" ||
		q.Color != "" || q.Supplier != "" || q.ProductID != 0
}
