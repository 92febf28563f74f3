package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Test helpers shared by the client, retriever and collector tests.

// newTestService starts a mock API server and returns a YouTube client
// pointed at it.
func newTestService(t *testing.T, handler http.Handler) *youtube.Service {
	t.Helper()

	// The generated client resolves calls against "<endpoint>/youtube/v3/...",
	// while the test muxes register bare resource paths like "/search".
	srv := httptest.NewServer(http.StripPrefix("/youtube/v3", handler))
	t.Cleanup(srv.Close)

	svc, err := youtube.NewService(context.Background(),
		option.WithAPIKey("test-key"),
		option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

// testConfig returns the default config with all delays disabled so tests
// run without pacing.
func testConfig() *Config {
	cfg := defaultConfig()
	cfg.VideoDelayMs = 0
	cfg.ThreadPageDelayMs = 0
	cfg.ReplyPageDelayMs = 0
	return cfg
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode mock response: %v", err)
	}
}

// writeCommentsDisabled emits the API's 403 response for a video with
// comments turned off.
func writeCommentsDisabled(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = fmt.Fprint(w, `{
		"error": {
			"code": 403,
			"message": "The video identified by the videoId parameter has disabled comments.",
			"errors": [
				{
					"message": "The video identified by the videoId parameter has disabled comments.",
					"domain": "youtube.commentThread",
					"reason": "commentsDisabled"
				}
			]
		}
	}`)
}

func searchResult(videoID, title, channel, publishedAt string) *youtube.SearchResult {
	return &youtube.SearchResult{
		Id:      &youtube.ResourceId{Kind: "youtube#video", VideoId: videoID},
		Snippet: &youtube.SearchResultSnippet{Title: title, ChannelTitle: channel, PublishedAt: publishedAt},
	}
}

func topLevelItem(threadID, author, text, publishedAt string, likes, totalReplies int64, inline ...*youtube.Comment) *youtube.CommentThread {
	thread := &youtube.CommentThread{
		Id: threadID,
		Snippet: &youtube.CommentThreadSnippet{
			TopLevelComment: &youtube.Comment{
				Id: threadID,
				Snippet: &youtube.CommentSnippet{
					AuthorDisplayName: author,
					TextDisplay:       text,
					LikeCount:         likes,
					PublishedAt:       publishedAt,
				},
			},
			TotalReplyCount: totalReplies,
		},
	}
	if len(inline) > 0 {
		thread.Replies = &youtube.CommentThreadReplies{Comments: inline}
	}
	return thread
}

func replyItem(id, parentID, author, text string) *youtube.Comment {
	return &youtube.Comment{
		Id: id,
		Snippet: &youtube.CommentSnippet{
			ParentId:          parentID,
			AuthorDisplayName: author,
			TextDisplay:       text,
			PublishedAt:       "2024-02-01T00:00:00Z",
		},
	}
}

// Tests for searchVideos

func TestSearchVideos_RanksResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "test query" {
			t.Errorf("search query = %q, want %q", got, "test query")
		}
		if got := r.URL.Query().Get("order"); got != "relevance" {
			t.Errorf("search order = %q, want relevance", got)
		}
		writeJSON(t, w, &youtube.SearchListResponse{
			Items: []*youtube.SearchResult{
				searchResult("vid1", "First Video", "Channel One", "2024-01-01T00:00:00Z"),
				searchResult("vid2", "Second Video", "Channel Two", "2024-01-02T00:00:00Z"),
			},
		})
	})

	svc := newTestService(t, mux)
	videos := searchVideos(context.Background(), svc, "test query", 50)

	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}
	if videos[0].ID != "vid1" || videos[0].Rank != 1 {
		t.Errorf("first video = %q rank %d, want vid1 rank 1", videos[0].ID, videos[0].Rank)
	}
	if videos[1].ID != "vid2" || videos[1].Rank != 2 {
		t.Errorf("second video = %q rank %d, want vid2 rank 2", videos[1].ID, videos[1].Rank)
	}
	if videos[0].Title != "First Video" || videos[0].Channel != "Channel One" {
		t.Errorf("first video metadata = %q/%q", videos[0].Title, videos[0].Channel)
	}
	if videos[0].PublishedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("first video publishedAt = %q", videos[0].PublishedAt)
	}
}

func TestSearchVideos_ErrorReturnsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	svc := newTestService(t, mux)
	videos := searchVideos(context.Background(), svc, "anything", 10)

	if len(videos) != 0 {
		t.Errorf("got %d videos on error, want 0", len(videos))
	}
}

func TestSearchVideos_SkipsNonVideoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.SearchListResponse{
			Items: []*youtube.SearchResult{
				{Id: &youtube.ResourceId{Kind: "youtube#channel"}, Snippet: &youtube.SearchResultSnippet{Title: "A Channel"}},
				searchResult("vid1", "Real Video", "Channel", "2024-01-01T00:00:00Z"),
			},
		})
	})

	svc := newTestService(t, mux)
	videos := searchVideos(context.Background(), svc, "q", 10)

	if len(videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(videos))
	}
	if videos[0].ID != "vid1" || videos[0].Rank != 1 {
		t.Errorf("video = %q rank %d, want vid1 rank 1", videos[0].ID, videos[0].Rank)
	}
}

// Tests for fetchVideoDetails / mergeVideoDetails

func TestFetchVideoDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.VideoListResponse{
			Items: []*youtube.Video{
				{
					Id:             "vid1",
					Snippet:        &youtube.VideoSnippet{Description: "about the video"},
					Statistics:     &youtube.VideoStatistics{ViewCount: 1000, LikeCount: 50, CommentCount: 7},
					ContentDetails: &youtube.VideoContentDetails{Duration: "PT2M18S"},
				},
				{
					// Statistics withheld by the API; all counts default to 0.
					Id:      "vid2",
					Snippet: &youtube.VideoSnippet{},
				},
			},
		})
	})

	svc := newTestService(t, mux)
	details := fetchVideoDetails(context.Background(), svc, []string{"vid1", "vid2", "vid3"})

	if len(details) != 2 {
		t.Fatalf("got %d details, want 2", len(details))
	}

	d1 := details["vid1"]
	if d1.ViewCount != 1000 || d1.LikeCount != 50 || d1.CommentCount != 7 {
		t.Errorf("vid1 counts = %d/%d/%d, want 1000/50/7", d1.ViewCount, d1.LikeCount, d1.CommentCount)
	}
	if d1.Duration != 138 {
		t.Errorf("vid1 duration = %d, want 138", d1.Duration)
	}
	if d1.Description != "about the video" {
		t.Errorf("vid1 description = %q", d1.Description)
	}

	d2 := details["vid2"]
	if d2.ViewCount != 0 || d2.Duration != 0 {
		t.Errorf("vid2 should default to zero values, got %+v", d2)
	}

	if _, ok := details["vid3"]; ok {
		t.Error("vid3 was not in the response and should be absent from the map")
	}
}

func TestFetchVideoDetails_ErrorReturnsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	svc := newTestService(t, mux)
	details := fetchVideoDetails(context.Background(), svc, []string{"vid1"})

	if len(details) != 0 {
		t.Errorf("got %d details on error, want 0", len(details))
	}
}

func TestMergeVideoDetails(t *testing.T) {
	videos := []Video{
		{ID: "vid1", Rank: 1, Title: "First"},
		{ID: "vid2", Rank: 2, Title: "Second"},
	}
	details := map[string]VideoDetail{
		"vid1": {ViewCount: 10, LikeCount: 2, CommentCount: 3, Duration: 60, Description: "desc"},
	}

	mergeVideoDetails(videos, details)

	if videos[0].ViewCount != 10 || videos[0].Duration != 60 || videos[0].Description != "desc" {
		t.Errorf("vid1 not merged: %+v", videos[0])
	}
	if videos[1].ViewCount != 0 || videos[1].Description != "" {
		t.Errorf("vid2 should keep zero values: %+v", videos[1])
	}
	if videos[1].Rank != 2 || videos[1].Title != "Second" {
		t.Errorf("vid2 discovery fields must survive the merge: %+v", videos[1])
	}
}

// Tests for isCommentsDisabled

func TestIsCommentsDisabled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "typed error with reason",
			err: &googleapi.Error{
				Code:    403,
				Message: "The video identified by the videoId parameter has disabled comments.",
				Errors:  []googleapi.ErrorItem{{Reason: "commentsDisabled"}},
			},
			want: true,
		},
		{
			name: "reason only in message",
			err:  errors.New("googleapi: Error 403: commentsDisabled"),
			want: true,
		},
		{
			name: "quota error",
			err: &googleapi.Error{
				Code:   403,
				Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
			},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCommentsDisabled(tt.err); got != tt.want {
				t.Errorf("isCommentsDisabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
