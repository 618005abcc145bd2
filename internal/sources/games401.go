package sources

import (
	"context"
	"fmt"
	"net/http"
)

const (
	games401BaseURL = "https://api.fastsimon.com"
	games401SiteURL = "https://store.401games.ca"
	games401StoreID = "17041809"
	games401UUID    = "d3cae9c0-9d9b-4fe3-ad81-873270df14b5"
)

// Games401 queries the Fast Simon index behind 401 Games. The search is
// narrowed to in-stock products, so stock is inferred from a price being
// present rather than reported per item.
type Games401 struct {
	httpSource
}

func NewGames401(client *http.Client) *Games401 {
	return &Games401{httpSource: newHTTPSource(client, games401BaseURL)}
}

func (s *Games401) Name() string { return "401 Games" }

type games401Response struct {
	Items []games401Item `json:"items"`
}

type games401Item struct {
	Title string    `json:"l"`
	Price jsonPrice `json:"p"`
	URL   string    `json:"u"`
}

func (s *Games401) Search(ctx context.Context, cardName string) (*Listing, error) {
	reqURL := fmt.Sprintf("%s/full_text_search?request_source=v-next&src=v-next&UUID=%s&store_id=%s&q=%s&narrow=[[%%22In+Stock%%22,%%22True%%22]]&page_num=1&products_per_page=40",
		s.baseURL, games401UUID, games401StoreID, escapeQuery(cardName))

	var resp games401Response
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var best *Listing
	for _, item := range resp.Items {
		if !Matches(item.Title, cardName) {
			continue
		}
		if !item.Price.IsPositive() || !cheaper(best, item.Price.Decimal) {
			continue
		}
		best = &Listing{
			Store:     s.Name(),
			Title:     item.Title,
			Price:     item.Price.Decimal,
			InStock:   true,
			StockInfo: "In Stock",
			URL:       absoluteURL(games401SiteURL, item.URL),
		}
	}

	return best, nil
}
