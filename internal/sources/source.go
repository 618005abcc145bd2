// Package sources holds one adapter per retailer. Each adapter knows its
// retailer's search URL and response schema and reduces a search to the
// cheapest in-stock item whose title matches the requested card.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

const (
	// DefaultTimeout bounds a single retailer query.
	DefaultTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0"
)

// Source queries one retailer.
type Source interface {
	Name() string
	// Search returns the cheapest in-stock item matching cardName.
	// Returns nil, nil when the retailer has no matching item.
	Search(ctx context.Context, cardName string) (*Listing, error)
}

// Listing is a retailer's best match for a card name, independent of the
// requested quantity.
type Listing struct {
	Store     string
	Title     string
	Price     decimal.Decimal
	InStock   bool
	StockInfo string
	URL       string
}

// Offer prices the listing for a quantity.
func (l Listing) Offer(quantity int) models.Offer {
	return models.NewOffer(l.Store, l.Title, l.Price, l.InStock, l.StockInfo, l.URL, quantity)
}

// IsArtCard reports whether a title looks like a decorative art card
// variant rather than the playable card.
func IsArtCard(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "art") && strings.Contains(t, "card")
}

// Matches reports whether a retailer title is acceptable for a query: it must
// contain the card name case-insensitively and must not be an art card.
func Matches(title, cardName string) bool {
	if IsArtCard(title) {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(cardName))
}

// cheaper reports whether candidate should replace the current best. Ties
// keep the first item seen.
func cheaper(best *Listing, candidate decimal.Decimal) bool {
	return best == nil || candidate.LessThan(best.Price)
}

// escapeQuery percent-encodes a card name for a URL, spaces as %20.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// absoluteURL resolves a possibly relative product link against the
// retailer's site. An empty link falls back to the site itself.
func absoluteURL(site, link string) string {
	base, err := url.Parse(site)
	if err != nil {
		return link
	}
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return site
	}
	return base.ResolveReference(ref).String()
}

// jsonPrice accepts prices encoded as numbers, numeric strings, empty
// strings or null. Missing prices decode to zero.
type jsonPrice struct {
	decimal.Decimal
}

func (p *jsonPrice) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		p.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", b, err)
	}
	p.Decimal = d
	return nil
}

// httpSource carries what every adapter needs to issue one GET: the shared
// client, a base URL (overridden in tests), the per-query timeout and a
// per-retailer rate limiter.
type httpSource struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
}

func newHTTPSource(client *http.Client, baseURL string) httpSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return httpSource{
		client:  client,
		baseURL: baseURL,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
	}
}

// SetTimeout changes the per-query timeout.
func (h *httpSource) SetTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

// SetRateLimit replaces the retailer rate limiter.
func (h *httpSource) SetRateLimit(every time.Duration, burst int) {
	h.limiter = rate.NewLimiter(rate.Every(every), burst)
}

// getJSON issues a GET and decodes the JSON body into target. The timeout
// covers waiting for the rate limiter as well as the request itself.
func (h *httpSource) getJSON(ctx context.Context, reqURL string, target any) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	// Some retailers label JSON as text/html, so the content type is not checked.
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
