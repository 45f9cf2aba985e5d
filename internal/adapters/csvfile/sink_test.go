package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewscraper/internal/core/domain"
)

func sampleReview() domain.Review {
	return domain.Review{
		ID:            "rev-1",
		Caption:       "Great coffee, friendly staff",
		RelativeDate:  "2 weeks ago",
		RetrievalDate: "2026-08-01 10:00:00",
		Rating:        "5",
		Username:      "Alice",
		NumReviews:    "12",
		NumPhotos:     "3",
		ProfileURL:    "https://maps.google.com/contrib/123",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOpenSink_WritesHeader(t *testing.T) {
	dir := t.TempDir()
	factory := NewFactory(dir, false)

	sink, path, err := factory.OpenSink("ChIJabc", "https://maps.google.com/x")
	require.NoError(t, err)
	defer sink.Close()

	assert.Equal(t, filepath.Join(dir, "ChIJabc_reviews.csv"), path)

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "id_review", rows[0][0])
	assert.Equal(t, "url_user", rows[0][9])
	assert.Len(t, rows[0], 10)
}

func TestOpenSink_SourceColumn(t *testing.T) {
	factory := NewFactory(t.TempDir(), true)

	sink, path, err := factory.OpenSink("ChIJabc", " https://maps.google.com/x \n")
	require.NoError(t, err)

	require.NoError(t, sink.Write(sampleReview()))
	require.NoError(t, sink.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "url_source", rows[0][10])
	assert.Equal(t, "https://maps.google.com/x", rows[1][10])
}

func TestSink_WriteIsDurableBeforeClose(t *testing.T) {
	factory := NewFactory(t.TempDir(), false)

	sink, path, err := factory.OpenSink("place_1", "")
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Write(sampleReview()))

	// The row must be readable without closing the sink.
	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "rev-1", rows[1][0])
	assert.Equal(t, "Great coffee, friendly staff", rows[1][1])
}

func TestOpenSink_MissingDirectory(t *testing.T) {
	factory := NewFactory(filepath.Join(t.TempDir(), "does", "not", "exist"), false)

	_, _, err := factory.OpenSink("place_1", "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to create output file"))
}

func TestOpenSink_OverwritesExistingFile(t *testing.T) {
	factory := NewFactory(t.TempDir(), false)

	sink, path, err := factory.OpenSink("dup", "")
	require.NoError(t, err)
	require.NoError(t, sink.Write(sampleReview()))
	require.NoError(t, sink.Close())

	sink2, path2, err := factory.OpenSink("dup", "")
	require.NoError(t, err)
	require.NoError(t, sink2.Close())

	assert.Equal(t, path, path2)
	rows := readRows(t, path2)
	assert.Len(t, rows, 1, "reopen truncates the earlier file")
}
