package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reviewscraper/internal/core/domain"
	"reviewscraper/internal/placeid"
)

// runTask executes one task inside a pool worker. Panics from the source
// or sink are converted into a failed result so that a broken task never
// takes down collection of the others.
func (o *Orchestrator) runTask(ctx context.Context, task domain.Task) (result domain.TaskResult) {
	startedAt := time.Now().UTC()
	defer func() {
		if r := recover(); r != nil {
			result = domain.TaskResult{
				TargetURL:  strings.TrimSpace(task.TargetURL),
				Status:     domain.StatusFailed,
				Error:      fmt.Sprintf("task panicked: %v", r),
				StartedAt:  startedAt,
				FinishedAt: time.Now().UTC(),
			}
		}
	}()
	return o.scrapeTarget(ctx, task)
}

// scrapeTarget scrapes reviews for a single target URL into its own CSV
// file. It never returns an error: every failure is captured in the
// returned TaskResult.
func (o *Orchestrator) scrapeTarget(ctx context.Context, task domain.Task) domain.TaskResult {
	target := strings.TrimSpace(task.TargetURL)
	result := domain.TaskResult{
		TargetURL: target,
		Status:    domain.StatusFailed,
		StartedAt: time.Now().UTC(),
	}
	finish := func() domain.TaskResult {
		result.FinishedAt = time.Now().UTC()
		return result
	}

	identifier := placeid.FromURL(task.TargetURL)
	sink, outputFile, err := o.sinks.OpenSink(identifier, target)
	if err != nil {
		result.Error = err.Error()
		o.logger.Printf("[%s] ERROR: %s", target, result.Error)
		return finish()
	}
	defer sink.Close()
	result.OutputFile = outputFile

	o.logger.Printf("Opening reviews for %s", target)
	session, err := o.source.Open(ctx, task.TargetURL)
	if err != nil {
		result.Error = err.Error()
		o.logger.Printf("[%s] ERROR: %s", target, result.Error)
		return finish()
	}
	defer session.Close()

	n := 0
	for n < task.ReviewLimit {
		// Batch numbering assumes a nominal page of 20 for display only;
		// the real batch size is whatever the session returns.
		o.logger.Printf("[%s] Fetching reviews batch %d", target, n/20+1)

		batch, err := session.NextBatch(ctx, n)
		if err != nil {
			result.Error = err.Error()
			o.logger.Printf("[%s] ERROR: %s", target, result.Error)
			return finish()
		}

		if len(batch) == 0 {
			o.logger.Printf("[%s] No more reviews available", target)
			break
		}

		for _, review := range batch {
			if err := sink.Write(review); err != nil {
				result.Error = err.Error()
				o.logger.Printf("[%s] ERROR: %s", target, result.Error)
				return finish()
			}
			result.ReviewsScraped++
		}

		n += len(batch)
	}

	result.Status = domain.StatusSuccess
	o.logger.Printf("[%s] Completed: %d reviews -> %s", target, result.ReviewsScraped, outputFile)
	return finish()
}
