package models

import (
	"github.com/shopspring/decimal"
)

// Offer is one retailer's priced result for one card query.
type Offer struct {
	Store     string          `json:"store"`
	CardName  string          `json:"card_name"` // title as returned by the retailer
	Price     decimal.Decimal `json:"price"`     // unit price
	InStock   bool            `json:"in_stock"`
	StockInfo string          `json:"stock_info"` // condition, "<n> in stock", or canned text
	TotalCost decimal.Decimal `json:"total_cost"`
	URL       string          `json:"url"`
}

// NewOffer builds an Offer for the given quantity. TotalCost is always
// Price * quantity.
func NewOffer(store, cardName string, price decimal.Decimal, inStock bool, stockInfo, url string, quantity int) Offer {
	return Offer{
		Store:     store,
		CardName:  cardName,
		Price:     price,
		InStock:   inStock,
		StockInfo: stockInfo,
		TotalCost: price.Mul(decimal.NewFromInt(int64(quantity))),
		URL:       url,
	}
}
