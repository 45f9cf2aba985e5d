// Package store persists run history in a local sqlite database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"reviewscraper/internal/core/domain"
)

// RunStore implements ports.RunStore on sqlite.
type RunStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the run-history database at path.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database %s: %w", path, err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			total_urls INTEGER,
			completed_urls INTEGER,
			failed_urls INTEGER,
			total_reviews INTEGER,
			status TEXT,
			started_at DATETIME,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS task_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			url TEXT,
			status TEXT,
			reviews_scraped INTEGER,
			error_message TEXT,
			output_file TEXT,
			started_at DATETIME,
			finished_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &RunStore{db: db}, nil
}

// SaveRun records the start of a run.
func (s *RunStore) SaveRun(stats domain.RunStatistics) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, total_urls, completed_urls, failed_urls, total_reviews, status, started_at)
		 VALUES (?, ?, 0, 0, 0, 'running', ?)`,
		stats.RunID, stats.TotalURLs, stats.StartedAt,
	)
	return err
}

// SaveTaskResult records one collected task result.
func (s *RunStore) SaveTaskResult(runID string, result domain.TaskResult) error {
	_, err := s.db.Exec(
		`INSERT INTO task_results (run_id, url, status, reviews_scraped, error_message, output_file, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, result.TargetURL, string(result.Status), result.ReviewsScraped,
		result.Error, result.OutputFile, result.StartedAt, result.FinishedAt,
	)
	return err
}

// CompleteRun stores the final statistics of a run.
func (s *RunStore) CompleteRun(stats domain.RunStatistics) error {
	_, err := s.db.Exec(
		`UPDATE runs SET completed_urls = ?, failed_urls = ?, total_reviews = ?, status = 'completed', finished_at = ?
		 WHERE id = ?`,
		stats.CompletedURLs, stats.FailedURLs, stats.TotalReviews, stats.FinishedAt, stats.RunID,
	)
	return err
}

// RunSummary is one row of run history.
type RunSummary struct {
	RunID         string
	TotalURLs     int
	CompletedURLs int
	FailedURLs    int
	TotalReviews  int
	Status        string
	StartedAt     time.Time
}

// ListRuns returns run history, newest first.
func (s *RunStore) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, total_urls, completed_urls, failed_urls, total_reviews, status, started_at
		 FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.TotalURLs, &r.CompletedURLs, &r.FailedURLs,
			&r.TotalReviews, &r.Status, &r.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TaskResults returns the stored results for one run, in collection order.
func (s *RunStore) TaskResults(runID string) ([]domain.TaskResult, error) {
	rows, err := s.db.Query(
		`SELECT url, status, reviews_scraped, error_message, output_file, started_at, finished_at
		 FROM task_results WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TaskResult
	for rows.Next() {
		var r domain.TaskResult
		var status string
		if err := rows.Scan(&r.TargetURL, &status, &r.ReviewsScraped, &r.Error,
			&r.OutputFile, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Status = domain.TaskStatus(status)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close releases the database handle.
func (s *RunStore) Close() error {
	return s.db.Close()
}
