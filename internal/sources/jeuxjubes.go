package sources

import (
	"context"
	"fmt"
	"net/http"
)

const (
	jeuxJubesBaseURL = "https://www.mtgjeuxjubes.com"
	jeuxJubesSiteURL = "https://www.jeuxjubes.com"
)

// JeuxJubes queries the Shopify predictive search of the JeuxJubes store.
type JeuxJubes struct {
	httpSource
}

func NewJeuxJubes(client *http.Client) *JeuxJubes {
	return &JeuxJubes{httpSource: newHTTPSource(client, jeuxJubesBaseURL)}
}

func (s *JeuxJubes) Name() string { return "JeuxJubes" }

type jeuxJubesResponse struct {
	Resources struct {
		Results struct {
			Products []jeuxJubesProduct `json:"products"`
		} `json:"results"`
	} `json:"resources"`
}

type jeuxJubesProduct struct {
	Title     string    `json:"title"`
	Available bool      `json:"available"`
	PriceMax  jsonPrice `json:"price_max"`
	URL       string    `json:"url"`
}

func (s *JeuxJubes) Search(ctx context.Context, cardName string) (*Listing, error) {
	reqURL := fmt.Sprintf("%s/search/suggest.json?q=%s&resources[type]=product", s.baseURL, escapeQuery(cardName))

	var resp jeuxJubesResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var best *Listing
	for _, p := range resp.Resources.Results.Products {
		if !p.Available || !Matches(p.Title, cardName) {
			continue
		}
		if !p.PriceMax.IsPositive() || !cheaper(best, p.PriceMax.Decimal) {
			continue
		}
		best = &Listing{
			Store:     s.Name(),
			Title:     p.Title,
			Price:     p.PriceMax.Decimal,
			InStock:   true,
			StockInfo: "Available online",
			URL:       absoluteURL(jeuxJubesSiteURL, p.URL),
		}
	}

	return best, nil
}
