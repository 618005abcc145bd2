package services

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

func offer(store, price string, inStock bool, quantity int) models.Offer {
	return models.NewOffer(store, "title", decimal.RequireFromString(price), inStock, "", "https://example.com", quantity)
}

func TestSummarize_StoreDeals(t *testing.T) {
	report := models.BatchReport{Results: []models.CardResult{
		{
			Card: models.Card{Name: "Lightning Bolt", Quantity: 2},
			Offers: []models.Offer{
				offer("Store A", "1.50", true, 2),
				offer("Store B", "1.20", true, 2),
			},
		},
		{
			Card: models.Card{Name: "Counterspell", Quantity: 1},
			Offers: []models.Offer{
				offer("Store A", "0.40", true, 1),
				offer("Store C", "0.10", false, 1),
			},
		},
		{
			Card:   models.Card{Name: "Black Lotus", Quantity: 1},
			Offers: []models.Offer{},
		},
	}}

	summary := Summarize(report)

	if summary.NoneAvailable {
		t.Error("NoneAvailable should be false")
	}
	if len(summary.StoreDeals) != 2 {
		t.Fatalf("expected 2 store deals (out-of-stock store excluded), got %+v", summary.StoreDeals)
	}

	first, second := summary.StoreDeals[0], summary.StoreDeals[1]
	if first.Store != "Store B" || !first.Total.Equal(decimal.RequireFromString("2.40")) {
		t.Errorf("first deal = %s %s, want Store B 2.40", first.Store, first.Total)
	}
	if second.Store != "Store A" || !second.Total.Equal(decimal.RequireFromString("3.40")) {
		t.Errorf("second deal = %s %s, want Store A 3.40", second.Store, second.Total)
	}

	wantLines := []string{"Lightning Bolt ($1.50 x 2)", "Counterspell ($0.40 x 1)"}
	if !reflect.DeepEqual(second.Cards, wantLines) {
		t.Errorf("Store A lines = %q, want %q", second.Cards, wantLines)
	}
	if !reflect.DeepEqual(first.Cards, []string{"Lightning Bolt ($1.20 x 2)"}) {
		t.Errorf("Store B lines = %q", first.Cards)
	}
}

func TestSummarize_SortsOffersWithoutMutatingInput(t *testing.T) {
	offers := []models.Offer{
		offer("A", "3.00", true, 1),
		offer("B", "1.00", true, 1),
		offer("C", "2.00", false, 1),
		offer("D", "1.00", true, 1),
	}
	report := models.BatchReport{Results: []models.CardResult{
		{Card: models.Card{Name: "Sol Ring", Quantity: 1}, Offers: offers},
	}}

	summary := Summarize(report)

	var got []string
	for _, o := range summary.Report.Results[0].Offers {
		got = append(got, o.Store)
	}
	// Stable: B stays ahead of D at the same total.
	if want := []string{"B", "D", "C", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sorted stores = %v, want %v", got, want)
	}
	if report.Results[0].Offers[0].Store != "A" {
		t.Error("input report was modified")
	}
}

func TestSummarize_TiedStoresKeepFirstAppearance(t *testing.T) {
	report := models.BatchReport{Results: []models.CardResult{
		{Card: models.Card{Name: "Island", Quantity: 1}, Offers: []models.Offer{
			offer("Second", "1.00", true, 1),
			offer("First", "1.00", true, 1),
		}},
	}}

	deals := Summarize(report).StoreDeals
	if len(deals) != 2 || deals[0].Store != "Second" || deals[1].Store != "First" {
		t.Errorf("tied stores should keep first-seen order, got %+v", deals)
	}
}

func TestSummarize_NothingInStock(t *testing.T) {
	report := models.BatchReport{Results: []models.CardResult{
		{Card: models.Card{Name: "Black Lotus", Quantity: 1}, Offers: []models.Offer{offer("A", "30000", false, 1)}},
		{Card: models.Card{Name: "Mox Pearl", Quantity: 1}, Offers: []models.Offer{}},
	}}

	summary := Summarize(report)
	if !summary.NoneAvailable {
		t.Error("NoneAvailable should be true")
	}
	if summary.StoreDeals == nil || len(summary.StoreDeals) != 0 {
		t.Errorf("expected empty, non-nil store deals, got %#v", summary.StoreDeals)
	}
}

func TestSummarize_DealTotalsMatchInStockOffers(t *testing.T) {
	report := models.BatchReport{Results: []models.CardResult{
		{Card: models.Card{Name: "A", Quantity: 3}, Offers: []models.Offer{offer("X", "0.33", true, 3), offer("Y", "0.10", true, 3)}},
		{Card: models.Card{Name: "B", Quantity: 7}, Offers: []models.Offer{offer("X", "1.07", true, 7), offer("Y", "0.01", false, 7)}},
		{Card: models.Card{Name: "C", Quantity: 1}, Offers: []models.Offer{offer("Y", "9.99", true, 1)}},
	}}

	summary := Summarize(report)

	expected := map[string]decimal.Decimal{}
	for _, r := range summary.Report.Results {
		for _, o := range r.Offers {
			if o.InStock {
				expected[o.Store] = expected[o.Store].Add(o.TotalCost)
			}
		}
	}
	if len(summary.StoreDeals) != len(expected) {
		t.Fatalf("deal count = %d, want %d", len(summary.StoreDeals), len(expected))
	}
	for _, deal := range summary.StoreDeals {
		if !deal.Total.Equal(expected[deal.Store]) {
			t.Errorf("%s total = %s, want %s", deal.Store, deal.Total, expected[deal.Store])
		}
	}
}
