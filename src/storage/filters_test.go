package storage

import (
	"testing"

	"price-tracker/src/models"
)

func TestBuildMatchFiltersNumbered(t *testing.T) {
	q := &models.MQuery{Model: "Alpha-128", Supplier: "ACME"}

	where, args := buildMatchFilters(q, true)
	want := "LOWER(model) LIKE '%' || $1 || '%' AND LOWER(supplier) LIKE '%' || $2 || '%'"
	if where != want {
		t.Fatalf("where:\ngot  %s\nwant %s", where, want)
	}
	if len(args) != 2 || args[0] != "alpha-128" || args[1] != "acme" {
		t.Fatalf("args not lowercased: %v", args)
	}
}

func TestBuildMatchFiltersPositional(t *testing.T) {
	q := &models.MQuery{ProductID: 7, Color: "Black"}

	where, args := buildMatchFilters(q, false)
	want := "id = ? AND LOWER(color) LIKE '%' || ? || '%'"
	if where != want {
		t.Fatalf("where: got %s", where)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != "black" {
		t.Fatalf("args: %v", args)
	}
}

func TestBuildMatchFiltersEmpty(t *testing.T) {
	where, args := buildMatchFilters(&models.MQuery{}, true)
	if where != "1=1" || args != nil {
		t.Fatalf("got %q %v", where, args)
	}
}
