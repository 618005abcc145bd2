// pricecheck prices a card list against every retailer once and prints the
// results table and the best deal per store.
//
// Usage: go run main.go [-file=<path>] [-card-concurrency=5] [-store-concurrency=5]
//
// The card list is read from -file, or from stdin when -file is omitted. Each
// line is "<quantity> <card name>", e.g. "4 Lightning Bolt". Lines that do
// not match are skipped with a warning.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codyseavey/tcg-pricecheck/internal/services"
	"github.com/codyseavey/tcg-pricecheck/internal/sources"
)

func main() {
	loadDotEnv()

	filePath := flag.String("file", "", "Card list file (default: stdin)")
	cardConcurrency := flag.Int("card-concurrency", services.DefaultCardConcurrency, "Cards priced at once")
	storeConcurrency := flag.Int("store-concurrency", services.DefaultStoreConcurrency, "Cards whose retailer queries may run at once")
	sourceTimeout := flag.Duration("timeout", sources.DefaultTimeout, "Timeout for a single retailer query")
	batchTimeout := flag.Duration("batch-timeout", services.DefaultBatchTimeout, "Timeout for the whole card list")
	quiet := flag.Bool("quiet", false, "Do not print progress to stderr")
	flag.Parse()

	text, err := readCardList(*filePath)
	if err != nil {
		log.Fatalf("Failed to read card list: %v", err)
	}

	cards := services.ParseCardList(text)
	if len(cards) == 0 {
		log.Fatal("No cards to price. Expected lines like \"4 Lightning Bolt\".")
	}

	client := &http.Client{Timeout: *sourceTimeout}
	engine := services.NewPriceEngine(
		sources.Defaults(client, sources.Options{Timeout: *sourceTimeout}),
		services.EngineConfig{CardConcurrency: *cardConcurrency, StoreConcurrency: *storeConcurrency},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *batchTimeout)
	defer cancel()

	progress := services.NewProgress()
	done := make(chan struct{})
	var wg sync.WaitGroup
	if !*quiet {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reportProgress(os.Stderr, progress, done)
		}()
	}

	report := engine.Process(ctx, cards, progress)
	close(done)
	wg.Wait()

	if err := services.WriteReport(os.Stdout, services.Summarize(report)); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

// loadDotEnv reads .env from the working directory if there is one. A missing
// file is the normal case; real environment variables win.
func loadDotEnv() bool {
	if err := godotenv.Load(); err != nil {
		return false
	}
	log.Println("Loaded configuration from .env")
	return true
}

func readCardList(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// reportProgress prints progress changes to w until done is closed, then
// prints the final 100%.
func reportProgress(w io.Writer, progress *services.Progress, done <-chan struct{}) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-done:
			fmt.Fprintln(w, "Progress: 100%")
			return
		case <-ticker.C:
			if p := progress.Percent(); p != last {
				fmt.Fprintf(w, "Progress: %d%%\n", p)
				last = p
			}
		}
	}
}
