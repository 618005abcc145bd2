package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codyseavey/tcg-pricecheck/internal/api"
	"github.com/codyseavey/tcg-pricecheck/internal/database"
	"github.com/codyseavey/tcg-pricecheck/internal/services"
	"github.com/codyseavey/tcg-pricecheck/internal/sources"
)

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./pricecheck.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sourceTimeout := envDuration("SOURCE_TIMEOUT", sources.DefaultTimeout)
	batchTimeout := envDuration("BATCH_TIMEOUT", services.DefaultBatchTimeout)

	// One client for every retailer; per-query deadlines come from the adapters.
	client := &http.Client{
		Timeout: sourceTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	retailers := sources.Defaults(client, sources.Options{
		Timeout:   sourceTimeout,
		CacheSize: envInt("LISTING_CACHE_SIZE", 500),
		CacheTTL:  envDuration("LISTING_CACHE_TTL", 5*time.Minute),
	})

	engine := services.NewPriceEngine(retailers, services.EngineConfig{
		CardConcurrency:  envInt("CARD_CONCURRENCY", services.DefaultCardConcurrency),
		StoreConcurrency: envInt("STORE_CONCURRENCY", services.DefaultStoreConcurrency),
	})
	log.Printf("Price engine configured with %d retailers: %v", len(retailers), engine.SourceNames())

	batchService, err := services.NewBatchService(engine, database.GetDB(), batchTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize batch service: %v", err)
	}

	// Setup router
	router := api.SetupRouter(batchService, engine.SourceNames())

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop background batches; they are recorded as interrupted
	batchService.Close()

	log.Println("Server exited")
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

// envDuration accepts Go durations ("30s") or a plain number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Ignoring invalid %s=%q, using %v", key, v, fallback)
	return fallback
}
