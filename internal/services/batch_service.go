package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-pricecheck/internal/metrics"
	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

const (
	// DefaultBatchTimeout bounds a whole batch, on top of the per-retailer timeout.
	DefaultBatchTimeout = 2 * time.Minute

	// finishedResultsSize is how many finished summaries are kept in memory.
	finishedResultsSize = 100
)

var ErrBatchNotFound = errors.New("batch not found")

// BatchView is a batch run as reported to clients.
type BatchView struct {
	Run      models.BatchRun `json:"run"`
	Progress int             `json:"progress"`
	Summary  *models.Summary `json:"summary,omitempty"` // nil until finished, or once evicted
}

// BatchService runs card lists through the price engine, records each run
// and keeps recent results for polling clients.
type BatchService struct {
	engine  *PriceEngine
	db      *gorm.DB
	timeout time.Duration
	results *lru.Cache[string, models.Summary]

	mu     sync.RWMutex
	active map[string]*Progress
	latest *Progress

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBatchService(engine *PriceEngine, db *gorm.DB, timeout time.Duration) (*BatchService, error) {
	if db == nil {
		return nil, errors.New("batch service requires a database")
	}
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}

	results, err := lru.New[string, models.Summary](finishedResultsSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create results cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &BatchService{
		engine:  engine,
		db:      db,
		timeout: timeout,
		results: results,
		active:  make(map[string]*Progress),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Run prices cards and waits for the result.
func (s *BatchService) Run(ctx context.Context, cards []models.Card) (string, models.Summary) {
	run, progress := s.begin(cards)
	summary := s.execute(ctx, run, cards, progress)
	return run.ID, summary
}

// Start prices cards in the background and returns the batch id right away.
func (s *BatchService) Start(cards []models.Card) string {
	run, progress := s.begin(cards)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in batch %s: %v", run.ID, r)
				if run.CompletedAt == nil {
					s.finish(run, models.Summary{}, context.Canceled)
				}
			}
		}()
		s.execute(s.ctx, run, cards, progress)
	}()

	return run.ID
}

// Close cancels background batches and waits for them to record their state.
func (s *BatchService) Close() {
	s.cancel()
	s.wg.Wait()
}

// LatestProgress returns the progress of the most recently started batch,
// or 0 if none has started.
func (s *BatchService) LatestProgress() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest.Percent()
}

// Get returns a batch run with its live progress and, once finished, its summary.
func (s *BatchService) Get(id string) (*BatchView, error) {
	var run models.BatchRun
	if err := s.db.First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch %s: %w", id, err)
	}

	view := &BatchView{Run: run}

	s.mu.RLock()
	progress, running := s.active[id]
	s.mu.RUnlock()

	switch {
	case running:
		view.Progress = progress.Percent()
	case run.Status == models.BatchStatusCompleted:
		view.Progress = 100
	}

	if summary, ok := s.results.Get(id); ok {
		view.Summary = &summary
	}
	return view, nil
}

// List returns the most recent batch runs, newest first.
func (s *BatchService) List(limit int) ([]models.BatchRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs := []models.BatchRun{}
	if err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return runs, nil
}

func (s *BatchService) begin(cards []models.Card) (*models.BatchRun, *Progress) {
	run := &models.BatchRun{
		ID:        uuid.New().String(),
		Status:    models.BatchStatusRunning,
		CardCount: len(cards),
		CardList:  FormatCardList(cards),
		StartedAt: time.Now(),
	}
	progress := NewProgress()

	if err := s.db.Create(run).Error; err != nil {
		log.Printf("Batch service: failed to record batch %s: %v", run.ID, err)
	}

	s.mu.Lock()
	s.active[run.ID] = progress
	s.latest = progress
	s.mu.Unlock()

	metrics.BatchesInFlight.Inc()
	log.Printf("Batch service: started batch %s with %d cards", run.ID, len(cards))
	return run, progress
}

func (s *BatchService) execute(ctx context.Context, run *models.BatchRun, cards []models.Card, progress *Progress) models.Summary {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := s.engine.Process(ctx, cards, progress)
	summary := Summarize(report)
	s.finish(run, summary, ctx.Err())
	return summary
}

// finish records the outcome of a batch. ctxErr is the batch context's error
// once the engine returned, if any. A run is finished at most once; a set
// CompletedAt marks it.
func (s *BatchService) finish(run *models.BatchRun, summary models.Summary, ctxErr error) {
	if run.CompletedAt != nil {
		return
	}
	now := time.Now()
	run.CompletedAt = &now
	run.DurationMS = now.Sub(run.StartedAt).Milliseconds()
	run.FoundCount = summary.Report.FoundCount()
	run.OfferCount = summary.Report.OfferCount()

	outcome := "completed"
	run.Status = models.BatchStatusCompleted
	switch {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		outcome = "deadline_exceeded"
	case errors.Is(ctxErr, context.Canceled):
		outcome = "interrupted"
		run.Status = models.BatchStatusInterrupted
	}

	if run.Status == models.BatchStatusCompleted {
		s.results.Add(run.ID, summary)
	}
	if err := s.db.Save(run).Error; err != nil {
		log.Printf("Batch service: failed to update batch %s: %v", run.ID, err)
	}

	s.mu.Lock()
	delete(s.active, run.ID)
	s.mu.Unlock()

	metrics.BatchesInFlight.Dec()
	metrics.BatchDuration.Observe(now.Sub(run.StartedAt).Seconds())
	metrics.BatchesTotal.WithLabelValues(outcome).Inc()

	log.Printf("Batch service: batch %s %s in %dms (%d/%d cards found, %d offers)",
		run.ID, outcome, run.DurationMS, run.FoundCount, run.CardCount, run.OfferCount)
}
