// Package csvfile implements ports.ReviewSink on top of one CSV file per
// place. Each task owns its own file, so no cross-task locking is needed.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reviewscraper/internal/core/domain"
	"reviewscraper/internal/core/ports"
)

var header = []string{
	"id_review", "caption", "more_caption", "relative_date", "retrieval_date",
	"rating", "username", "n_review_user", "n_photo_user", "url_user",
}

const sourceColumn = "url_source"

// Factory implements ports.SinkOpener for a single output directory.
type Factory struct {
	Dir        string
	WithSource bool
}

// NewFactory creates a sink factory writing into dir. When withSource is
// set, every row carries the source URL as a trailing column.
func NewFactory(dir string, withSource bool) *Factory {
	return &Factory{Dir: dir, WithSource: withSource}
}

// OpenSink creates <dir>/<identifier>_reviews.csv and writes the header.
// A later open with the same identifier overwrites the earlier file; the
// caller is expected to derive distinct identifiers per target.
func (f *Factory) OpenSink(identifier, sourceURL string) (ports.ReviewSink, string, error) {
	path := filepath.Join(f.Dir, identifier+"_reviews.csv")

	file, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	s := &Sink{
		file:       file,
		writer:     csv.NewWriter(file),
		withSource: f.WithSource,
		sourceURL:  strings.TrimSpace(sourceURL),
	}

	cols := header
	if f.WithSource {
		cols = append(append([]string(nil), header...), sourceColumn)
	}
	if err := s.writeRow(cols); err != nil {
		file.Close()
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}

	return s, path, nil
}

// Sink writes reviews for one place. Not safe for concurrent use; each
// worker owns exactly one sink.
type Sink struct {
	file       *os.File
	writer     *csv.Writer
	withSource bool
	sourceURL  string
}

// Write appends one review row and flushes it to disk, so output stays
// valid up to the last completed write even if the task is killed.
func (s *Sink) Write(review domain.Review) error {
	row := review.Fields()
	if s.withSource {
		row = append(row, s.sourceURL)
	}
	if err := s.writeRow(row); err != nil {
		return fmt.Errorf("failed to write review row: %w", err)
	}
	return nil
}

// Close flushes pending data and releases the file.
func (s *Sink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func (s *Sink) writeRow(row []string) error {
	if err := s.writer.Write(row); err != nil {
		return err
	}
	s.writer.Flush()
	return s.writer.Error()
}
