package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
	"github.com/codyseavey/tcg-pricecheck/internal/services"
)

type PriceHandler struct {
	batchService *services.BatchService
}

func NewPriceHandler(batchService *services.BatchService) *PriceHandler {
	return &PriceHandler{
		batchService: batchService,
	}
}

// CardListRequest carries a pasted card list, one "<qty> <name>" per line.
// Accepted as JSON or as a form field.
type CardListRequest struct {
	CardListText string `json:"card_list_text" form:"card_list_text"`
}

type CheckPricesResponse struct {
	BatchID       string              `json:"batch_id"`
	Cards         []models.Card       `json:"cards"`
	Results       []models.CardResult `json:"results"`
	StoreDeals    []models.StoreDeal  `json:"store_deals"`
	NoneAvailable bool                `json:"none_available"`
}

// CheckPrices parses a card list and prices it, waiting for the result
func (h *PriceHandler) CheckPrices(c *gin.Context) {
	cards, ok := bindCardList(c)
	if !ok {
		return
	}

	id, summary := h.batchService.Run(c.Request.Context(), cards)

	c.JSON(http.StatusOK, CheckPricesResponse{
		BatchID:       id,
		Cards:         cards,
		Results:       summary.Report.Results,
		StoreDeals:    summary.StoreDeals,
		NoneAvailable: summary.NoneAvailable,
	})
}

// GetProgress returns the progress of the most recently started batch
func (h *PriceHandler) GetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"percent": h.batchService.LatestProgress()})
}

// bindCardList writes a 400 response and returns false when the request
// holds no usable card lines.
func bindCardList(c *gin.Context) ([]models.Card, bool) {
	var req CardListRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return nil, false
	}

	cards := services.ParseCardList(req.CardListText)
	if len(cards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card list has no lines of the form \"<quantity> <card name>\""})
		return nil, false
	}
	return cards, true
}
