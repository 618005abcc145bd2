package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	snapcasterBaseURL = "https://api.snapcaster.ca"
	snapcasterSiteURL = "https://www.snapcaster.ca"
)

// Snapcaster is a marketplace that aggregates many Canadian vendors, so its
// offers are labelled with the vendor as well.
type Snapcaster struct {
	httpSource
}

func NewSnapcaster(client *http.Client) *Snapcaster {
	return &Snapcaster{httpSource: newHTTPSource(client, snapcasterBaseURL)}
}

func (s *Snapcaster) Name() string { return "Snapcaster" }

type snapcasterResponse struct {
	Data struct {
		Results []snapcasterProduct `json:"results"`
	} `json:"data"`
}

type snapcasterProduct struct {
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	Price          jsonPrice `json:"price"`
	Vendor         string    `json:"vendor"`
	Condition      string    `json:"condition"`
	Link           string    `json:"link"`
}

func (s *Snapcaster) Search(ctx context.Context, cardName string) (*Listing, error) {
	reqURL := fmt.Sprintf("%s/api/v1/catalog/search?mode=singles&tcg=mtg&region=ca&keyword=%s&sortBy=price-asc&maxResultsPerPage=100&pageNumber=1",
		s.baseURL, escapeQuery(cardName))

	var resp snapcasterResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	// Results are requested price-ascending, but the whole page is still
	// scanned so the cheapest match wins regardless of the vendor's ordering.
	var best *Listing
	for _, p := range resp.Data.Results {
		if IsArtCard(p.NormalizedName) || !Matches(p.Name, cardName) {
			continue
		}
		if !p.Price.IsPositive() || !cheaper(best, p.Price.Decimal) {
			continue
		}

		vendor := strings.TrimSpace(p.Vendor)
		if vendor == "" {
			vendor = "Unknown"
		}
		condition := strings.TrimSpace(p.Condition)
		if condition == "" {
			condition = "Unknown"
		}

		best = &Listing{
			Store:     fmt.Sprintf("Snapcaster (%s)", vendor),
			Title:     p.Name,
			Price:     p.Price.Decimal,
			InStock:   true,
			StockInfo: condition,
			URL:       absoluteURL(snapcasterSiteURL, p.Link),
		}
	}

	return best, nil
}
