package main

// Video represents a single discovered video with enrichment data merged in.
// Videos are never exported on their own; their fields are denormalized onto
// every comment row they own.
type Video struct {
	ID           string
	Rank         int // 1-based position in the search response
	Title        string
	Channel      string
	PublishedAt  string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     int64 // seconds
	Description  string
}

// VideoDetail holds the statistics and content fields fetched per video ID.
// Videos missing from the detail response keep zero values.
type VideoDetail struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     int64
	Description  string
}

// Comment is one top-level comment or reply as retrieved, before video
// metadata is attached. ParentID is empty exactly when IsReply is false.
type Comment struct {
	VideoID     string
	ID          string
	ParentID    string
	IsReply     bool
	Author      string
	Text        string
	LikeCount   int64
	PublishedAt string
}

// ExportRow is a Comment paired with its owning video's metadata, ready for
// the CSV writer.
type ExportRow struct {
	Comment Comment
	Video   Video
}
