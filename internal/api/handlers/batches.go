package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-pricecheck/internal/services"
)

type BatchHandler struct {
	batchService *services.BatchService
}

func NewBatchHandler(batchService *services.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
	}
}

// StartBatch starts pricing a card list in the background
func (h *BatchHandler) StartBatch(c *gin.Context) {
	cards, ok := bindCardList(c)
	if !ok {
		return
	}

	id := h.batchService.Start(cards)
	c.JSON(http.StatusAccepted, gin.H{
		"id":         id,
		"card_count": len(cards),
	})
}

// ListBatches returns recent batch runs, newest first
func (h *BatchHandler) ListBatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.batchService.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": runs})
}

// GetBatch returns one batch with its progress and, once done, its results
func (h *BatchHandler) GetBatch(c *gin.Context) {
	id := c.Param("id")

	view, err := h.batchService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}
