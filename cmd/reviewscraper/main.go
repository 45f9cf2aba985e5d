package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"reviewscraper/internal/adapters/apify"
	"reviewscraper/internal/adapters/csvfile"
	"reviewscraper/internal/config"
	"reviewscraper/internal/core/ports"
	"reviewscraper/internal/service"
	"reviewscraper/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "reviewscraper",
		Usage: "Google Maps reviews scraper with parallel processing",
		Commands: []*cli.Command{
			scrapeCommand(),
			runsCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func scrapeCommand() *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Scrape reviews for every URL in the input file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "urls.txt", Usage: "target URLs file, one per line"},
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Value: "data", Usage: "output directory for per-place CSV files"},
			&cli.IntFlag{Name: "reviews", Aliases: []string{"n"}, Value: 10, Usage: "number of reviews to scrape per URL"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 2, Usage: "number of parallel workers (max recommended: 4)"},
			&cli.BoolFlag{Name: "source", Usage: "add source url column to CSV files"},
			&cli.StringFlag{Name: "preset", Value: string(config.PresetNormal), Usage: "speed preset: cautious, normal, fast, aggressive"},
			&cli.StringFlag{Name: "db", Value: "data/runs.db", Usage: "run-history database path (empty to disable)"},
			&cli.BoolFlag{Name: "place", Usage: "scrape place metadata instead of reviews"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose single-worker mode"},
		},
		Action: runScrape,
	}
}

func runScrape(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("place") {
		color.Red("Place metadata scraping is not implemented")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	urls, err := readTargetURLs(cmd.String("input"))
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", cmd.String("input"))
	}

	preset := config.Preset(cmd.String("preset"))
	profile := config.Profile(preset)
	if preset == config.PresetAggressive {
		color.Yellow("Warning: aggressive preset has very high bot detection risk")
	}

	workers := cmd.Int("workers")
	if workers > config.MaxRecommendedWorkers {
		color.Yellow("Warning: more than %d workers significantly increases detection risk, capping", config.MaxRecommendedWorkers)
		workers = config.MaxRecommendedWorkers
	}
	if cmd.Bool("debug") {
		workers = 1
	}

	reviews := cmd.Int("reviews")
	outDir := cmd.String("out-dir")

	color.Cyan("Starting Google Maps Reviews Scraper")
	color.Cyan("Configuration:")
	fmt.Printf("  - Input file: %s\n", cmd.String("input"))
	fmt.Printf("  - Output directory: %s\n", outDir)
	fmt.Printf("  - Reviews per URL: %d\n", reviews)
	fmt.Printf("  - Parallel workers: %d\n", workers)
	fmt.Printf("  - Preset: %s (%s)\n", preset, profile.Description)

	estimate := config.EstimateDuration(len(urls), reviews, workers, 2*time.Second)
	fmt.Printf("  - Estimated time: %s\n", config.FormatDuration(estimate))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	var runStore ports.RunStore
	if dbPath := cmd.String("db"); dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		runStore = st
	}

	source, err := apify.NewReviewSource(cfg.APIToken, reviews, profile)
	if err != nil {
		return err
	}
	sinks := csvfile.NewFactory(outDir, cmd.Bool("source"))
	logger := log.New(os.Stdout, "", log.LstdFlags)

	orchestrator := service.NewOrchestrator(source, sinks, runStore, workers, logger)

	color.Green("Starting parallel scraping of %d URL(s)...\n", len(urls))
	stats, results := orchestrator.ScrapeAll(ctx, urls, reviews)

	service.NewReporter(os.Stdout).PrintSummary(stats, results)
	color.Green("Each place has been saved to its own CSV file in %s/", outDir)

	// Individual task failures do not fail the process; only unreadable
	// input does.
	return nil
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List past scraping runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "data/runs.db", Usage: "run-history database path"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := store.Open(cmd.String("db"))
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet")
				return nil
			}

			for _, r := range runs {
				fmt.Printf("%s  %s  urls=%d completed=%d failed=%d reviews=%d  %s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.Status,
					r.TotalURLs, r.CompletedURLs, r.FailedURLs, r.TotalReviews, r.RunID)
			}
			return nil
		},
	}
}

// readTargetURLs reads one URL per line, skipping blank lines.
func readTargetURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file %s: %w", path, err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if url := strings.TrimSpace(scanner.Text()); url != "" {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}
