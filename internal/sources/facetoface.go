package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	faceToFaceBaseURL = "https://facetofacegames.com"
	faceToFaceSiteURL = "https://facetofacegames.com"
)

// FaceToFace queries the Face to Face Games product indexer. Each product
// carries its variants (condition/finish) with their own price and inventory.
type FaceToFace struct {
	httpSource
}

func NewFaceToFace(client *http.Client) *FaceToFace {
	return &FaceToFace{httpSource: newHTTPSource(client, faceToFaceBaseURL)}
}

func (s *FaceToFace) Name() string { return "Face to Face Games" }

type faceToFaceResponse struct {
	Hits struct {
		Hits []struct {
			Source faceToFaceProduct `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type faceToFaceProduct struct {
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	Variants []struct {
		Price             jsonPrice `json:"price"`
		InventoryQuantity int       `json:"inventoryQuantity"`
	} `json:"variants"`
}

func (s *FaceToFace) Search(ctx context.Context, cardName string) (*Listing, error) {
	// The availability filter is itself a path segment, hence the double-encoded space.
	reqURL := fmt.Sprintf("%s/apps/prod-indexer/search/pageSize/24/page/1/keyword/%s/Availability/In%%2520Stock",
		s.baseURL, escapeQuery(cardName))

	var resp faceToFaceResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	var best *Listing
	for _, hit := range resp.Hits.Hits {
		src := hit.Source
		if !Matches(src.Title, cardName) {
			continue
		}
		for _, v := range src.Variants {
			if v.InventoryQuantity <= 0 || !v.Price.IsPositive() || !cheaper(best, v.Price.Decimal) {
				continue
			}
			best = &Listing{
				Store:     s.Name(),
				Title:     src.Title,
				Price:     v.Price.Decimal,
				InStock:   true,
				StockInfo: fmt.Sprintf("%d in stock", v.InventoryQuantity),
				URL:       fmt.Sprintf("%s/products/%s", faceToFaceSiteURL, url.PathEscape(src.Handle)),
			}
		}
	}

	return best, nil
}
