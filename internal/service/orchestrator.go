// Package service contains the scraping orchestrator: a bounded worker
// pool that fans target URLs out to extraction sessions and aggregates
// per-task outcomes into run-level statistics.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"reviewscraper/internal/core/domain"
	"reviewscraper/internal/core/ports"
)

// Orchestrator coordinates parallel scraping of multiple target URLs.
type Orchestrator struct {
	source     ports.ReviewSource
	sinks      ports.SinkOpener
	store      ports.RunStore
	maxWorkers int
	logger     *log.Logger
}

// NewOrchestrator creates a new Orchestrator. store may be nil to disable
// run-history persistence.
func NewOrchestrator(
	source ports.ReviewSource,
	sinks ports.SinkOpener,
	store ports.RunStore,
	maxWorkers int,
	logger *log.Logger,
) *Orchestrator {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Orchestrator{
		source:     source,
		sinks:      sinks,
		store:      store,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// ScrapeAll scrapes every target URL with a bounded pool of workers and
// returns run statistics plus one TaskResult per target, in completion
// order. A failing target never aborts the run or the other in-flight
// targets; each target is attempted exactly once.
func (o *Orchestrator) ScrapeAll(ctx context.Context, urls []string, reviewLimit int) (domain.RunStatistics, []domain.TaskResult) {
	stats := domain.RunStatistics{
		RunID:     uuid.New().String(),
		TotalURLs: len(urls),
		StartedAt: time.Now().UTC(),
	}

	o.logger.Printf("Starting parallel scraping with %d workers", o.maxWorkers)
	o.logger.Printf("URLs to scrape: %d", len(urls))

	if o.store != nil {
		if err := o.store.SaveRun(stats); err != nil {
			o.logger.Printf("WARNING: failed to record run start: %v", err)
		}
	}

	workers := o.maxWorkers
	if workers > len(urls) {
		workers = len(urls)
	}

	tasks := make(chan domain.Task)
	completions := make(chan domain.TaskResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for task := range tasks {
				completions <- o.runTask(ctx, task)
			}
		}()
	}

	go func() {
		for _, url := range urls {
			tasks <- domain.Task{TargetURL: url, ReviewLimit: reviewLimit}
		}
		close(tasks)
		wg.Wait()
		close(completions)
	}()

	// Single aggregator: statistics are only ever mutated here, draining
	// the completion channel in arrival order.
	results := make([]domain.TaskResult, 0, len(urls))
	for result := range completions {
		if result.Status == domain.StatusSuccess {
			stats.CompletedURLs++
		} else {
			stats.FailedURLs++
		}
		stats.TotalReviews += result.ReviewsScraped
		results = append(results, result)

		if o.store != nil {
			if err := o.store.SaveTaskResult(stats.RunID, result); err != nil {
				o.logger.Printf("WARNING: failed to record task result: %v", err)
			}
		}

		progress := float64(len(results)) / float64(len(urls)) * 100
		o.logger.Printf("Progress: %d/%d (%.1f%%)", len(results), len(urls), progress)
	}

	stats.FinishedAt = time.Now().UTC()

	if o.store != nil {
		if err := o.store.CompleteRun(stats); err != nil {
			o.logger.Printf("WARNING: failed to record run completion: %v", err)
		}
	}

	return stats, results
}
