package sources

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestJeuxJubes_Search(t *testing.T) {
	var gotURI string
	server := newJSONServer(t, `{"resources": {"results": {"products": [
		{"title": "Lightning Bolt - Magic 2010", "available": true, "price_max": "2.00", "url": "/products/lightning-bolt-m10"},
		{"title": "Lightning Bolt - Beta", "available": false, "price_max": "0.75", "url": "/products/lightning-bolt-beta"},
		{"title": "Lightning Bolt Art Card", "available": true, "price_max": "0.50", "url": "/products/art"},
		{"title": "Lightning Bolt - Masters 25", "available": true, "price_max": "1.50", "url": "/products/lightning-bolt-a25"},
		{"title": "Lightning Bolt - Promo", "available": true, "price_max": "0.00", "url": "/products/promo"}
	]}}}`, &gotURI)

	s := NewJeuxJubes(nil)
	s.baseURL = server.URL

	listing, err := s.Search(context.Background(), "Lightning Bolt")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if listing == nil {
		t.Fatal("expected a listing")
	}

	if !strings.HasPrefix(gotURI, "/search/suggest.json?q=Lightning%20Bolt&resources[type]=product") {
		t.Errorf("unexpected request URI %q", gotURI)
	}
	if !listing.Price.Equal(decimal.RequireFromString("1.50")) {
		t.Errorf("Price = %s, want 1.50", listing.Price)
	}
	if listing.Title != "Lightning Bolt - Masters 25" {
		t.Errorf("Title = %q", listing.Title)
	}
	if listing.Store != "JeuxJubes" || listing.StockInfo != "Available online" {
		t.Errorf("unexpected store/stock: %q / %q", listing.Store, listing.StockInfo)
	}
	if listing.URL != "https://www.jeuxjubes.com/products/lightning-bolt-a25" {
		t.Errorf("URL = %q", listing.URL)
	}
}

func TestJeuxJubes_NothingAvailable(t *testing.T) {
	server := newJSONServer(t, `{"resources": {"results": {"products": [
		{"title": "Black Lotus", "available": false, "price_max": "30000.00", "url": "/products/lotus"}
	]}}}`, nil)

	s := NewJeuxJubes(nil)
	s.baseURL = server.URL

	listing, err := s.Search(context.Background(), "Black Lotus")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if listing != nil {
		t.Errorf("expected no listing for unavailable products, got %+v", listing)
	}
}
