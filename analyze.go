package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// analysisReport holds the aggregate statistics computed over one export.
type analysisReport struct {
	TotalRows     int
	TopLevel      int
	Replies       int
	UniqueVideos  int
	UniqueAuthors int
	TopParents    []parentReplies
	TopVideos     []videoEngagement
}

// parentReplies is one entry in the most-replied-parents ranking.
type parentReplies struct {
	CommentID  string
	Text       string
	ReplyCount int
}

// videoEngagement is one entry in the per-video comment-count ranking.
type videoEngagement struct {
	VideoID  string
	Title    string
	Items    int
	TopLevel int
	Replies  int
}

// analyzeExport reads a previously written export back and computes aggregate
// statistics. The rows are loaded into an in-memory SQLite database and
// aggregated with SQL; the source file is never modified.
func analyzeExport(path string) (*analysisReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export %s is empty", path)
	}

	// Resolve column positions from the header so the analyzer tolerates
	// schema extensions.
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"video_id", "comment_id", "parent_id", "is_reply", "author", "comment_text", "video_title"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("export %s is missing column %q", path, required)
		}
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := loadRows(db, records[1:], col); err != nil {
		return nil, err
	}

	report := &analysisReport{}

	err = db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(is_reply), 0),
		       COUNT(DISTINCT video_id),
		       COUNT(DISTINCT author)
		FROM comments`).Scan(&report.TotalRows, &report.Replies, &report.UniqueVideos, &report.UniqueAuthors)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}
	report.TopLevel = report.TotalRows - report.Replies

	if report.TopParents, err = queryTopParents(db); err != nil {
		return nil, err
	}
	if report.TopVideos, err = queryTopVideos(db); err != nil {
		return nil, err
	}

	slog.Debug("Analyzed export", "path", path, "rows", report.TotalRows)
	return report, nil
}

func loadRows(db *sql.DB, rows [][]string, col map[string]int) error {
	createTable := `
	CREATE TABLE comments (
		video_id TEXT NOT NULL,
		comment_id TEXT NOT NULL,
		parent_id TEXT,
		is_reply INTEGER NOT NULL,
		author TEXT,
		comment_text TEXT,
		video_title TEXT
	)`
	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("failed to create comments table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO comments (video_id, comment_id, parent_id, is_reply, author, comment_text, video_title) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		isReply, err := strconv.ParseBool(row[col["is_reply"]])
		if err != nil {
			slog.Warn("Skipping row with malformed is_reply", "value", row[col["is_reply"]])
			continue
		}
		isReplyInt := 0
		if isReply {
			isReplyInt = 1
		}
		_, err = stmt.Exec(
			row[col["video_id"]],
			row[col["comment_id"]],
			row[col["parent_id"]],
			isReplyInt,
			row[col["author"]],
			row[col["comment_text"]],
			row[col["video_title"]],
		)
		if err != nil {
			return fmt.Errorf("failed to load row: %w", err)
		}
	}

	return tx.Commit()
}

// queryTopParents returns the ten parent comments with the most replies,
// together with the parent's own text.
func queryTopParents(db *sql.DB) ([]parentReplies, error) {
	rows, err := db.Query(`
		SELECT c.parent_id,
		       COUNT(*) AS reply_count,
		       COALESCE(MIN(p.comment_text), '')
		FROM comments c
		LEFT JOIN comments p ON p.comment_id = c.parent_id
		WHERE c.is_reply = 1
		GROUP BY c.parent_id
		ORDER BY reply_count DESC, c.parent_id
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top parents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var parents []parentReplies
	for rows.Next() {
		var p parentReplies
		if err := rows.Scan(&p.CommentID, &p.ReplyCount, &p.Text); err != nil {
			return nil, fmt.Errorf("failed to scan parent row: %w", err)
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}

// queryTopVideos returns the five videos with the most collected items.
func queryTopVideos(db *sql.DB) ([]videoEngagement, error) {
	rows, err := db.Query(`
		SELECT video_id,
		       MIN(video_title),
		       COUNT(*) AS items,
		       SUM(CASE WHEN is_reply = 0 THEN 1 ELSE 0 END),
		       SUM(is_reply)
		FROM comments
		GROUP BY video_id
		ORDER BY items DESC, video_id
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("failed to query video engagement: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var videos []videoEngagement
	for rows.Next() {
		var v videoEngagement
		if err := rows.Scan(&v.VideoID, &v.Title, &v.Items, &v.TopLevel, &v.Replies); err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// printReport renders an analysis report to stdout.
func printReport(r *analysisReport) {
	fmt.Println("\n=== Analysis of Comments Data ===")
	fmt.Println()
	fmt.Printf("Total items: %d\n", r.TotalRows)
	fmt.Printf("Top-level comments: %d\n", r.TopLevel)
	fmt.Printf("Replies: %d\n", r.Replies)
	fmt.Printf("Unique videos: %d\n", r.UniqueVideos)
	fmt.Printf("Unique authors: %d\n", r.UniqueAuthors)

	if len(r.TopParents) > 0 {
		fmt.Println("\nTop comments with most replies:")
		for _, p := range r.TopParents {
			fmt.Printf("  - %s (%d replies)\n", truncate(p.Text, 50), p.ReplyCount)
		}
	}

	if len(r.TopVideos) > 0 {
		fmt.Println("\nTop videos by comment count:")
		for i, v := range r.TopVideos {
			fmt.Printf("  %d. %s - %d items (%d comments, %d replies)\n",
				i+1, truncate(v.Title, 50), v.Items, v.TopLevel, v.Replies)
		}
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
