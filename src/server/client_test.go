package server

import (
	"testing"

	"price-tracker/src/models"
)

func TestClientWants(t *testing.T) {
	c := &Client{}
	alpha := &models.MPriceHistoryResult{Model: "Alpha-128"}
	beta := &models.MPriceHistoryResult{Model: "Beta-64"}

	// No filters set: everything passes
	if !c.wants(alpha) || !c.wants(beta) {
		t.Fatalf("unfiltered client must receive everything")
	}

	c.setFilters([]string{"alpha"})
	if !c.wants(alpha) {
		t.Fatalf("filter should match by substring")
	}
	if c.wants(beta) {
		t.Fatalf("filter should exclude non-matching models")
	}

	c.setFilters([]string{"beta", "gamma"})
	if !c.wants(beta) || c.wants(alpha) {
		t.Fatalf("multiple filters are a disjunction")
	}

	// Clearing filters reopens the stream
	c.setFilters(nil)
	if !c.wants(alpha) {
		t.Fatalf("cleared filters must pass everything again")
	}
}

func TestHandleClientMessageSubscribe(t *testing.T) {
	s := testServer(t, "")
	c := &Client{hub: s}

	s.handleClientMessage(c, []byte(`{"command":"subscribe","models":[" Alpha-128 ","BETA"]}`))

	if !c.wants(&models.MPriceHistoryResult{Model: "alpha-128"}) {
		t.Fatalf("subscribe filters not normalized to lowercase/trimmed")
	}
	if !c.wants(&models.MPriceHistoryResult{Model: "Beta-64"}) {
		t.Fatalf("second filter lost")
	}
	if c.wants(&models.MPriceHistoryResult{Model: "Gamma-1"}) {
		t.Fatalf("unfiltered model passed")
	}

	// Unknown commands leave filters untouched
	s.handleClientMessage(c, []byte(`{"command":"unsubscribe","models":[]}`))
	if c.wants(&models.MPriceHistoryResult{Model: "Gamma-1"}) {
		t.Fatalf("unknown command reset filters")
	}
}
