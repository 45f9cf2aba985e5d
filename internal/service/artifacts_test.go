package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewscraper/internal/adapters/csvfile"
)

// Scraping the same targets with 1 and 4 workers must produce byte-identical
// CSV artifacts.
func TestScrapeAll_ArtifactsIdenticalAcrossWorkerCounts(t *testing.T) {
	urls := []string{target("AAA"), target("BBB"), target("CCC")}

	run := func(workers int) map[string][]byte {
		source := newFakeSource(20)
		source.available[urls[0]] = 35
		source.available[urls[1]] = 0
		source.available[urls[2]] = 80

		dir := t.TempDir()
		o := NewOrchestrator(source, csvfile.NewFactory(dir, true), nil, workers, testLogger())
		_, results := o.ScrapeAll(context.Background(), urls, 60)
		require.Len(t, results, len(urls))

		files := make(map[string][]byte)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			files[e.Name()] = data
		}
		return files
	}

	serial := run(1)
	parallel := run(4)

	require.Len(t, serial, len(urls))
	require.Len(t, parallel, len(urls))
	for name, want := range serial {
		assert.Equal(t, want, parallel[name], "artifact %s differs between worker counts", name)
	}
}
