package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"reviewscraper/internal/core/domain"
)

// Reporter renders per-task and run-level summaries. Presentation only;
// it holds no state beyond the output writer.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintSummary writes per-URL results followed by overall statistics.
func (r *Reporter) PrintSummary(stats domain.RunStatistics, results []domain.TaskResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintln(r.out, strings.Repeat("=", 80))
	fmt.Fprintln(r.out, "SCRAPING SUMMARY")
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nPer-URL Results:")
	for _, result := range results {
		line := green
		symbol := "✓"
		if result.Status != domain.StatusSuccess {
			line = red
			symbol = "✗"
		}
		line.Fprintf(r.out, "%s %s\n", symbol, result.TargetURL)
		fmt.Fprintf(r.out, "  Reviews: %d, Duration: %.2fs\n", result.ReviewsScraped, result.Duration().Seconds())
		if result.OutputFile != "" {
			fmt.Fprintf(r.out, "  Output: %s\n", result.OutputFile)
		}
		if result.Error != "" {
			red.Fprintf(r.out, "  Error: %s\n", result.Error)
		}
	}

	totalDuration := stats.FinishedAt.Sub(stats.StartedAt).Seconds()

	fmt.Fprintln(r.out, "\nOverall Statistics:")
	fmt.Fprintf(r.out, "Total URLs: %d\n", stats.TotalURLs)
	fmt.Fprintf(r.out, "Completed: %d\n", stats.CompletedURLs)
	fmt.Fprintf(r.out, "Failed: %d\n", stats.FailedURLs)
	fmt.Fprintf(r.out, "Total Reviews Scraped: %d\n", stats.TotalReviews)
	fmt.Fprintf(r.out, "Total Duration: %.2f seconds\n", totalDuration)
	if stats.TotalURLs > 0 {
		fmt.Fprintf(r.out, "Average Time per URL: %.2f seconds\n", totalDuration/float64(stats.TotalURLs))
	}
	if stats.TotalReviews > 0 && stats.CompletedURLs > 0 {
		fmt.Fprintf(r.out, "Average Reviews per URL: %.1f\n", float64(stats.TotalReviews)/float64(stats.CompletedURLs))
	}
	fmt.Fprintln(r.out, strings.Repeat("=", 80))
}
