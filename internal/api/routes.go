package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/tcg-pricecheck/internal/api/handlers"
	"github.com/codyseavey/tcg-pricecheck/internal/metrics"
	"github.com/codyseavey/tcg-pricecheck/internal/services"
)

func SetupRouter(batchService *services.BatchService, sourceNames []string) *gin.Engine {
	router := gin.Default()
	router.Use(requestMetrics())

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	priceHandler := handlers.NewPriceHandler(batchService)
	batchHandler := handlers.NewBatchHandler(batchService)

	api := router.Group("/api")
	{
		prices := api.Group("/prices")
		{
			prices.POST("/check", priceHandler.CheckPrices)
			prices.GET("/progress", priceHandler.GetProgress)
		}

		batches := api.Group("/batches")
		{
			batches.POST("", batchHandler.StartBatch)
			batches.GET("", batchHandler.ListBatches)
			batches.GET("/:id", batchHandler.GetBatch)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sources": sourceNames})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestMetrics records request counts and latency per route template, so
// batch ids do not explode label cardinality.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
