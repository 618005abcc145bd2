package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewOfferTotalCost(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{"single copy", "1.50", 1, "1.5"},
		{"playset", "0.10", 4, "0.4"},
		{"no float drift", "0.1", 3, "0.3"},
		{"large quantity", "19.99", 100, "1999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			offer := NewOffer("JeuxJubes", "Lightning Bolt", price, true, "Available online", "https://example.com", tt.quantity)

			if !offer.TotalCost.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("TotalCost = %s, want %s", offer.TotalCost, tt.want)
			}
			if !offer.TotalCost.Equal(offer.Price.Mul(decimal.NewFromInt(int64(tt.quantity)))) {
				t.Errorf("TotalCost %s != Price %s * %d", offer.TotalCost, offer.Price, tt.quantity)
			}
		})
	}
}

func TestBatchReportLookupKeepsDuplicates(t *testing.T) {
	report := BatchReport{Results: []CardResult{
		{Card: Card{Name: "Lightning Bolt", Quantity: 2}},
		{Card: Card{Name: "Black Lotus", Quantity: 1}},
		{Card: Card{Name: "Lightning Bolt", Quantity: 4}},
	}}

	if len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(report.Results))
	}

	r, ok := report.Lookup("Lightning Bolt")
	if !ok {
		t.Fatal("expected Lightning Bolt to be found")
	}
	if r.Card.Quantity != 2 {
		t.Errorf("Lookup should return the first occurrence, got quantity %d", r.Card.Quantity)
	}

	if _, ok := report.Lookup("Mox Pearl"); ok {
		t.Error("Mox Pearl should not be found")
	}
}

func TestBatchReportCounts(t *testing.T) {
	offer := NewOffer("401 Games", "Black Lotus", decimal.NewFromInt(20000), true, "In Stock", "https://example.com", 1)
	report := BatchReport{Results: []CardResult{
		{Card: Card{Name: "Black Lotus", Quantity: 1}, Offers: []Offer{offer, offer}},
		{Card: Card{Name: "Mox Pearl", Quantity: 1}},
	}}

	if report.FoundCount() != 1 {
		t.Errorf("FoundCount() = %d, want 1", report.FoundCount())
	}
	if report.OfferCount() != 2 {
		t.Errorf("OfferCount() = %d, want 2", report.OfferCount())
	}
	if report.Results[1].Found() {
		t.Error("card without offers should not be found")
	}
	if _, ok := report.Results[1].Cheapest(); ok {
		t.Error("Cheapest() on an empty result should report false")
	}
}
