package models

import (
	"github.com/shopspring/decimal"
)

// CardResult holds every offer found for one requested card, cheapest first
// once summarized. An empty Offers slice means "not found in any store".
type CardResult struct {
	Card   Card    `json:"card"`
	Offers []Offer `json:"offers"`
}

// Found reports whether any retailer returned an offer.
func (r CardResult) Found() bool {
	return len(r.Offers) > 0
}

// Cheapest returns the first offer, which is the lowest total cost after the
// report has been summarized.
func (r CardResult) Cheapest() (Offer, bool) {
	if len(r.Offers) == 0 {
		return Offer{}, false
	}
	return r.Offers[0], true
}

// BatchReport is the full per-card result set for one submitted card list,
// in input order. Duplicate card names keep separate entries.
type BatchReport struct {
	Results []CardResult `json:"results"`
}

// Lookup returns the first result for a card name.
func (b BatchReport) Lookup(name string) (CardResult, bool) {
	for _, r := range b.Results {
		if r.Card.Name == name {
			return r, true
		}
	}
	return CardResult{}, false
}

// OfferCount returns the total number of offers across all cards.
func (b BatchReport) OfferCount() int {
	n := 0
	for _, r := range b.Results {
		n += len(r.Offers)
	}
	return n
}

// FoundCount returns how many cards have at least one offer.
func (b BatchReport) FoundCount() int {
	n := 0
	for _, r := range b.Results {
		if r.Found() {
			n++
		}
	}
	return n
}

// StoreDeal is what buying every available in-stock card from a single
// retailer would cost.
type StoreDeal struct {
	Store string          `json:"store"`
	Total decimal.Decimal `json:"total"`
	Cards []string        `json:"cards"`
}

// Summary pairs the cheapest-first report with the per-store rollup.
type Summary struct {
	Report        BatchReport `json:"report"`
	StoreDeals    []StoreDeal `json:"store_deals"`
	NoneAvailable bool        `json:"none_available"` // no in-stock offer anywhere
}
