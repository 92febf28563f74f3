package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// newYouTubeService builds a YouTube Data API client authenticated with a
// static API key.
func newYouTubeService(ctx context.Context, apiKey string) (*youtube.Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return svc, nil
}

// searchVideos runs a single relevance-ordered video search and returns the
// results as ranked video stubs (statistics are filled in separately by
// fetchVideoDetails). A remote error aborts only discovery: it is logged and
// an empty list is returned.
func searchVideos(ctx context.Context, svc *youtube.Service, query string, maxResults int64) []Video {
	slog.Debug("Searching for videos", "query", query, "maxResults", maxResults)

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Video search failed", "error", err, "query", query)
		return nil
	}

	var videos []Video
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, Video{
			ID:          item.Id.VideoId,
			Rank:        len(videos) + 1,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	slog.Debug("Search returned videos", "count", len(videos))
	return videos
}

// fetchVideoDetails batch-fetches statistics and content metadata for the
// given video IDs in a single multi-ID call. IDs absent from the response are
// simply absent from the returned map; callers keep zero values for them. A
// remote error is logged and yields an empty map, never a failure.
func fetchVideoDetails(ctx context.Context, svc *youtube.Service, videoIDs []string) map[string]VideoDetail {
	details := make(map[string]VideoDetail)
	if len(videoIDs) == 0 {
		return details
	}

	resp, err := svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Failed to fetch video details", "error", err, "videoCount", len(videoIDs))
		return details
	}

	for _, item := range resp.Items {
		var d VideoDetail
		if item.Statistics != nil {
			d.ViewCount = int64(item.Statistics.ViewCount)
			d.LikeCount = int64(item.Statistics.LikeCount)
			d.CommentCount = int64(item.Statistics.CommentCount)
		}
		if item.ContentDetails != nil {
			d.Duration = parseISODuration(item.ContentDetails.Duration)
		}
		if item.Snippet != nil {
			d.Description = item.Snippet.Description
		}
		details[item.Id] = d
	}

	slog.Debug("Fetched video details", "requested", len(videoIDs), "returned", len(details))
	return details
}

// mergeVideoDetails merges enrichment data into the discovery stubs by ID.
// Videos without detail data (e.g. deleted between the two calls) keep their
// zero values.
func mergeVideoDetails(videos []Video, details map[string]VideoDetail) {
	for i := range videos {
		d, ok := details[videos[i].ID]
		if !ok {
			continue
		}
		videos[i].ViewCount = d.ViewCount
		videos[i].LikeCount = d.LikeCount
		videos[i].CommentCount = d.CommentCount
		videos[i].Duration = d.Duration
		videos[i].Description = d.Description
	}
}

// isCommentsDisabled reports whether a remote error means the video has
// comments turned off. The API signals this as a 403 with a dedicated reason;
// the message text is checked as a fallback since sub-reasons may only be
// embedded there.
func isCommentsDisabled(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			if item.Reason == "commentsDisabled" {
				return true
			}
		}
	}
	return strings.Contains(err.Error(), "commentsDisabled")
}
