package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

// Summarize sorts each card's offers by total cost and works out what
// buying everything in stock from a single retailer would cost. The input
// report is not modified.
func Summarize(report models.BatchReport) models.Summary {
	results := make([]models.CardResult, len(report.Results))
	deals := []models.StoreDeal{}
	dealIndex := make(map[string]int)

	for i, result := range report.Results {
		offers := make([]models.Offer, len(result.Offers))
		copy(offers, result.Offers)
		sortOffers(offers)
		results[i] = models.CardResult{Card: result.Card, Offers: offers}

		for _, offer := range offers {
			if !offer.InStock {
				continue
			}
			j, ok := dealIndex[offer.Store]
			if !ok {
				j = len(deals)
				dealIndex[offer.Store] = j
				deals = append(deals, models.StoreDeal{Store: offer.Store, Total: decimal.Zero, Cards: []string{}})
			}
			deals[j].Total = deals[j].Total.Add(offer.TotalCost)
			deals[j].Cards = append(deals[j].Cards, dealLine(result.Card, offer))
		}
	}

	// Stable, so stores with equal totals stay in first-seen order.
	sort.SliceStable(deals, func(a, b int) bool {
		return deals[a].Total.LessThan(deals[b].Total)
	})

	return models.Summary{
		Report:        models.BatchReport{Results: results},
		StoreDeals:    deals,
		NoneAvailable: len(deals) == 0,
	}
}

// dealLine renders "<card> ($<unit price> x <quantity>)".
func dealLine(card models.Card, offer models.Offer) string {
	return fmt.Sprintf("%s ($%s x %d)", card.Name, offer.Price.StringFixed(2), card.Quantity)
}

func sortOffers(offers []models.Offer) {
	sort.SliceStable(offers, func(a, b int) bool {
		return offers[a].TotalCost.LessThan(offers[b].TotalCost)
	})
}
