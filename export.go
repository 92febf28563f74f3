package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// exportColumns is the fixed output schema. Column order is part of the
// contract with downstream consumers and must not change.
var exportColumns = []string{
	"video_id",
	"comment_id",
	"parent_id",
	"is_reply",
	"relevance_rank",
	"video_title",
	"video_channel",
	"video_published_at",
	"video_view_count",
	"video_like_count",
	"video_comment_count",
	"video_duration",
	"video_description",
	"author",
	"comment_text",
	"comment_like_count",
	"comment_published_at",
}

// writeCSV writes the accumulated rows to path, header first, replacing any
// existing file. The parent directory is created if needed.
func writeCSV(path string, rows []ExportRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// record renders one export row in exportColumns order. Timestamps stay in
// their original ISO 8601 form; parent_id is empty for top-level rows.
func (r ExportRow) record() []string {
	return []string{
		r.Comment.VideoID,
		r.Comment.ID,
		r.Comment.ParentID,
		strconv.FormatBool(r.Comment.IsReply),
		strconv.Itoa(r.Video.Rank),
		r.Video.Title,
		r.Video.Channel,
		r.Video.PublishedAt,
		strconv.FormatInt(r.Video.ViewCount, 10),
		strconv.FormatInt(r.Video.LikeCount, 10),
		strconv.FormatInt(r.Video.CommentCount, 10),
		strconv.FormatInt(r.Video.Duration, 10),
		r.Video.Description,
		r.Comment.Author,
		r.Comment.Text,
		strconv.FormatInt(r.Comment.LikeCount, 10),
		r.Comment.PublishedAt,
	}
}
