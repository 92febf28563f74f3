package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const defaultQuery = "NYC congestion pricing"

func main() {
	query := flag.String("q", defaultQuery, "search query")
	maxVideos := flag.Int("n", 50, "maximum number of videos to process")
	output := flag.String("o", "", "output CSV filename (default: <output_dir>/youtube_comments_YYYYMMDD_HHMM.csv)")
	feedPath := flag.String("feed", "", "also write an Atom feed of the collected videos to this path")
	configPath := flag.String("config", "", "path to JSON config file with collector tuning")
	analyzePath := flag.String("analyze", "", "load and display stats from an existing CSV file instead of collecting")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *analyzePath != "" {
		report, err := analyzeExport(*analyzePath)
		if err != nil {
			slog.Error("Analysis failed", "error", err, "path", *analyzePath)
			os.Exit(1)
		}
		printReport(report)
		return
	}

	cfg := loadConfig(*configPath)

	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		slog.Error("YOUTUBE_API_KEY is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	svc, err := newYouTubeService(ctx, apiKey)
	if err != nil {
		slog.Error("Failed to create YouTube client", "error", err)
		os.Exit(1)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath(cfg.OutputDir, time.Now())
	}

	if err := runCollection(ctx, svc, cfg, *query, int64(*maxVideos), outputPath, *feedPath); err != nil {
		slog.Error("Collection failed", "error", err)
		os.Exit(1)
	}
}

// defaultOutputPath builds the timestamped export filename inside dir.
func defaultOutputPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("youtube_comments_%s.csv", now.Format("20060102_1504")))
}
