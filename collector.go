package main

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/youtube/v3"
)

// runCollection drives the full pipeline: discovery, enrichment, serial
// per-video comment retrieval, decoration of every comment with its video's
// metadata, and finally the CSV export (plus the optional Atom feed).
//
// Per-video failures are absorbed inside fetchVideoComments; the run only
// ends early when discovery itself produces nothing, in which case no export
// is written.
func runCollection(ctx context.Context, svc *youtube.Service, cfg *Config, query string, maxVideos int64, outputPath, feedPath string) error {
	slog.Info("Searching for videos", "query", query, "maxVideos", maxVideos)

	videos := searchVideos(ctx, svc, query, maxVideos)
	if len(videos) == 0 {
		return fmt.Errorf("no videos found for query %q", query)
	}

	videoIDs := make([]string, 0, len(videos))
	for _, v := range videos {
		videoIDs = append(videoIDs, v.ID)
	}
	mergeVideoDetails(videos, fetchVideoDetails(ctx, svc, videoIDs))

	slog.Info("Found videos, fetching comments and replies", "count", len(videos))

	p := newPacer(cfg)
	var rows []ExportRow
	totalTopLevel := 0
	totalReplies := 0

	for i, video := range videos {
		p.waitVideo(ctx)
		slog.Info("Processing video", "position", fmt.Sprintf("%d/%d", i+1, len(videos)), "title", video.Title)

		comments, topLevel, replies := fetchVideoComments(ctx, svc, p, cfg, video.ID)
		totalTopLevel += topLevel
		totalReplies += replies

		for _, c := range comments {
			rows = append(rows, ExportRow{Comment: c, Video: video})
		}

		slog.Info("Collected items for video",
			"video_id", video.ID,
			"items", len(comments),
			"topLevel", topLevel,
			"replies", replies)
	}

	if len(rows) == 0 {
		slog.Warn("No comments collected, nothing to export")
		return nil
	}

	if err := writeCSV(outputPath, rows); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if feedPath != "" {
		if err := writeVideoFeed(feedPath, videos); err != nil {
			slog.Warn("Failed to write video feed", "error", err, "path", feedPath)
		}
	}

	slog.Info("Collection finished",
		"topLevelComments", totalTopLevel,
		"replies", totalReplies,
		"totalItems", len(rows),
		"output", outputPath)
	return nil
}
