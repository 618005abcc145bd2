package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-pricecheck/internal/sources"
)

// fakeSource is an in-memory retailer keyed by lowercased card name.
type fakeSource struct {
	name     string
	listings map[string]*sources.Listing
	failFor  map[string]bool // card names that return an error
	panicFor map[string]bool // card names that panic
	delay    time.Duration
	calls    atomic.Int32
}

func newFakeSource(name string) *fakeSource {
	return &fakeSource{
		name:     name,
		listings: make(map[string]*sources.Listing),
		failFor:  make(map[string]bool),
		panicFor: make(map[string]bool),
	}
}

// with adds an in-stock listing whose title is the card name.
func (f *fakeSource) with(cardName, price string) *fakeSource {
	return f.withListing(cardName, &sources.Listing{
		Store:     f.name,
		Title:     cardName,
		Price:     decimal.RequireFromString(price),
		InStock:   true,
		StockInfo: "In Stock",
		URL:       "https://" + strings.ReplaceAll(strings.ToLower(f.name), " ", "") + ".example/" + strings.ReplaceAll(strings.ToLower(cardName), " ", "-"),
	})
}

func (f *fakeSource) withListing(cardName string, listing *sources.Listing) *fakeSource {
	f.listings[strings.ToLower(cardName)] = listing
	return f
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, cardName string) (*sources.Listing, error) {
	f.calls.Add(1)
	key := strings.ToLower(cardName)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panicFor[key] {
		panic("unexpected response shape")
	}
	if f.failFor[key] {
		return nil, errors.New("connection refused")
	}

	listing, ok := f.listings[key]
	if !ok {
		return nil, nil
	}
	l := *listing
	return &l, nil
}
