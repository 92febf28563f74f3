package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"
)

// generateVideoFeed creates an Atom feed of the collected videos, in
// relevance-rank order, as an auxiliary output next to the CSV export.
func generateVideoFeed(videos []Video) (string, error) {
	now := time.Now()

	feed := &feeds.Feed{
		Title:       "Collected YouTube Videos",
		Description: "Videos discovered by the latest comment collection run",
		Link:        &feeds.Link{Href: "https://www.youtube.com/", Rel: "self", Type: "text/html"},
		Id:          "tag:youtube.com,2025:collected-videos",
		Created:     now,
		Updated:     now,
	}

	for _, video := range videos {
		watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", video.ID)

		created := now
		if t, err := time.Parse(time.RFC3339, video.PublishedAt); err == nil {
			created = t
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Title: video.Title,
			Link:  &feeds.Link{Href: watchURL},
			Id:    fmt.Sprintf("tag:youtube.com:%s", video.ID),
			Author: &feeds.Author{
				Name: video.Channel,
			},
			Description: fmt.Sprintf("Rank: %d | Views: %d | Comments: %d | Duration: %ds",
				video.Rank,
				video.ViewCount,
				video.CommentCount,
				video.Duration),
			Created: created,
			Updated: now,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return "", fmt.Errorf("failed to render feed: %w", err)
	}

	return atom, nil
}

// writeVideoFeed renders the video feed and writes it to path.
func writeVideoFeed(path string, videos []Video) error {
	atom, err := generateVideoFeed(videos)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create feed directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(atom), 0644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	slog.Info("Video feed saved", "count", len(videos), "path", path)
	return nil
}
