package ports

import (
	"context"

	"reviewscraper/internal/core/domain"
)

// ReviewSource defines the contract for opening a review stream on a target.
type ReviewSource interface {
	// Open starts an extraction session for the given target URL.
	// Returns an error if the target is unreachable or unsupported.
	Open(ctx context.Context, targetURL string) (ReviewSession, error)
}

// ReviewSession yields paginated batches of reviews for one target.
// A session is owned by a single worker and must be closed on every exit path.
type ReviewSession interface {
	// NextBatch returns the next batch of reviews starting at the given
	// offset. An empty batch signals that the target is exhausted.
	// Batch size is chosen by the session, not the caller.
	NextBatch(ctx context.Context, offset int) ([]domain.Review, error)

	// Close releases the session's underlying resources.
	Close() error
}

// ReviewSink persists reviews for a single task. Every write is durable
// before it returns, so partial output stays valid if the task dies.
type ReviewSink interface {
	// Write appends one review as a single row.
	Write(review domain.Review) error

	// Close releases the underlying file.
	Close() error
}

// SinkOpener creates one ReviewSink per task.
type SinkOpener interface {
	// OpenSink opens the output stream for the given identifier and
	// returns the sink plus the path of the created artifact.
	// sourceURL is attached to every row when source attribution is on.
	OpenSink(identifier, sourceURL string) (ReviewSink, string, error)
}

// RunStore persists run history.
type RunStore interface {
	// SaveRun records the start of a run.
	SaveRun(stats domain.RunStatistics) error

	// SaveTaskResult records one collected task result.
	SaveTaskResult(runID string, result domain.TaskResult) error

	// CompleteRun records the final statistics of a run.
	CompleteRun(stats domain.RunStatistics) error
}
