package sources

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/codyseavey/tcg-pricecheck/internal/metrics"
)

// Cached remembers a retailer's answer for a card name for a short while,
// so repeated names within a batch (or across quick resubmits) cost one
// request. Failures are never cached.
type Cached struct {
	Source
	listings *expirable.LRU[string, cachedListing]
}

// cachedListing distinguishes a remembered "no match" (nil listing) from a
// cache miss.
type cachedListing struct {
	listing *Listing
}

// NewCached wraps src with an LRU of at most size entries, each kept for ttl.
func NewCached(src Source, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 500
	}
	return &Cached{
		Source:   src,
		listings: expirable.NewLRU[string, cachedListing](size, nil, ttl),
	}
}

func (c *Cached) Search(ctx context.Context, cardName string) (*Listing, error) {
	key := strings.ToLower(strings.TrimSpace(cardName))

	if hit, ok := c.listings.Get(key); ok {
		metrics.ListingCacheLookups.WithLabelValues(c.Name(), "hit").Inc()
		return hit.copy(), nil
	}
	metrics.ListingCacheLookups.WithLabelValues(c.Name(), "miss").Inc()

	listing, err := c.Source.Search(ctx, cardName)
	if err != nil {
		return nil, err
	}
	c.listings.Add(key, cachedListing{listing: listing})
	return cachedListing{listing: listing}.copy(), nil
}

// Len returns the number of remembered card names.
func (c *Cached) Len() int {
	return c.listings.Len()
}

func (c cachedListing) copy() *Listing {
	if c.listing == nil {
		return nil
	}
	l := *c.listing
	return &l
}

// Options configures the default retailer set.
type Options struct {
	Timeout   time.Duration // per query
	CacheSize int
	CacheTTL  time.Duration // zero disables the listing cache
}

// Defaults builds the four retailer adapters sharing one HTTP client.
func Defaults(client *http.Client, opts Options) []Source {
	snapcaster := NewSnapcaster(client)
	jeuxJubes := NewJeuxJubes(client)
	games401 := NewGames401(client)
	faceToFace := NewFaceToFace(client)

	snapcaster.SetTimeout(opts.Timeout)
	jeuxJubes.SetTimeout(opts.Timeout)
	games401.SetTimeout(opts.Timeout)
	faceToFace.SetTimeout(opts.Timeout)

	all := []Source{snapcaster, jeuxJubes, games401, faceToFace}
	if opts.CacheTTL <= 0 {
		return all
	}

	cached := make([]Source, len(all))
	for i, src := range all {
		cached[i] = NewCached(src, opts.CacheSize, opts.CacheTTL)
	}
	return cached
}
