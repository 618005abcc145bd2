package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/codyseavey/tcg-pricecheck/internal/metrics"
	"github.com/codyseavey/tcg-pricecheck/internal/models"
	"github.com/codyseavey/tcg-pricecheck/internal/sources"
)

const (
	DefaultCardConcurrency  = 5
	DefaultStoreConcurrency = 5
)

// EngineConfig bounds how much work a batch puts in flight.
type EngineConfig struct {
	CardConcurrency  int // cards priced at once
	StoreConcurrency int // cards whose retailer fan-out may run at once
}

// PriceEngine prices card lists against every configured retailer.
type PriceEngine struct {
	sources    []sources.Source
	cardWidth  int64
	storeWidth int64
}

func NewPriceEngine(srcs []sources.Source, cfg EngineConfig) *PriceEngine {
	if cfg.CardConcurrency <= 0 {
		cfg.CardConcurrency = DefaultCardConcurrency
	}
	if cfg.StoreConcurrency <= 0 {
		cfg.StoreConcurrency = DefaultStoreConcurrency
	}
	return &PriceEngine{
		sources:    srcs,
		cardWidth:  int64(cfg.CardConcurrency),
		storeWidth: int64(cfg.StoreConcurrency),
	}
}

// SourceNames lists the configured retailers in query order.
func (e *PriceEngine) SourceNames() []string {
	names := make([]string, len(e.sources))
	for i, src := range e.sources {
		names[i] = src.Name()
	}
	return names
}

// QueryAllSources asks every retailer about one card at once and returns the
// offers found, cheapest first. A retailer that fails or has no match simply
// contributes nothing.
func (e *PriceEngine) QueryAllSources(ctx context.Context, card models.Card) []models.Offer {
	return e.queryAllSources(ctx, card, nil)
}

func (e *PriceEngine) queryAllSources(ctx context.Context, card models.Card, gate *semaphore.Weighted) []models.Offer {
	if gate != nil {
		if err := gate.Acquire(ctx, 1); err != nil {
			log.Printf("Price engine: no retailer slot for %s: %v", card.Name, err)
			return []models.Offer{}
		}
		defer gate.Release(1)
	}

	found := make([]*models.Offer, len(e.sources))
	var wg sync.WaitGroup
	for i, src := range e.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			found[i] = e.querySource(ctx, src, card)
		}(i, src)
	}
	wg.Wait()

	offers := make([]models.Offer, 0, len(found))
	for _, offer := range found {
		if offer != nil {
			offers = append(offers, *offer)
		}
	}
	sortOffers(offers)
	return offers
}

// querySource runs one retailer query and never lets a failure escape:
// errors and panics are logged and reported as no offer.
func (e *PriceEngine) querySource(ctx context.Context, src sources.Source, card models.Card) (offer *models.Offer) {
	name := src.Name()
	start := time.Now()
	defer func() {
		metrics.SourceRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			log.Printf("%s error (%s): panic: %v", name, card.Name, r)
			metrics.SourceRequestsTotal.WithLabelValues(name, "error").Inc()
			offer = nil
		}
	}()

	listing, err := src.Search(ctx, card.Name)
	if err != nil {
		log.Printf("%s error (%s): %v", name, card.Name, err)
		metrics.SourceRequestsTotal.WithLabelValues(name, "error").Inc()
		return nil
	}
	if listing == nil || !sources.Matches(listing.Title, card.Name) || !listing.Price.IsPositive() {
		metrics.SourceRequestsTotal.WithLabelValues(name, "not_found").Inc()
		return nil
	}

	metrics.SourceRequestsTotal.WithLabelValues(name, "found").Inc()
	o := listing.Offer(card.Quantity)
	return &o
}

// Process prices every card in the list and returns one result per card in
// input order. Progress, if non-nil, moves from 0 to 100 as cards finish.
// Process never fails: a card nobody could price has an empty offer list.
func (e *PriceEngine) Process(ctx context.Context, cards []models.Card, progress *Progress) models.BatchReport {
	report := models.BatchReport{Results: make([]models.CardResult, len(cards))}
	for i, card := range cards {
		report.Results[i] = models.CardResult{Card: card, Offers: []models.Offer{}}
	}
	if len(cards) == 0 {
		progress.Complete()
		return report
	}

	cardGate := semaphore.NewWeighted(e.cardWidth)
	storeGate := semaphore.NewWeighted(e.storeWidth)
	done := make(chan struct{}, len(cards))

	for i := range cards {
		go func(i int) {
			defer func() { done <- struct{}{} }()

			card := cards[i]
			if err := cardGate.Acquire(ctx, 1); err != nil {
				log.Printf("Price engine: skipping %s: %v", card.Name, err)
				return
			}
			defer cardGate.Release(1)

			report.Results[i].Offers = e.queryAllSources(ctx, card, storeGate)
		}(i)
	}

	for completed := 1; completed <= len(cards); completed++ {
		<-done
		metrics.CardsProcessedTotal.Inc()
		progress.Set(completed * 100 / len(cards))
	}
	progress.Complete()

	for _, result := range report.Results {
		if !result.Found() {
			metrics.CardsNotFoundTotal.Inc()
		}
	}
	return report
}
