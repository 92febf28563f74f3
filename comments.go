package main

import (
	"context"
	"log/slog"

	"google.golang.org/api/youtube/v3"
)

// fetchVideoComments retrieves every comment and reply for one video. It
// pages through the thread listing for top-level comments and their inline
// reply previews, then pages the reply listing for threads whose
// totalReplyCount exceeds what came inline. Replies can appear in both
// sources, so a per-video seen-set guarantees each reply ID is emitted at
// most once.
//
// Any thread-listing error (including comments being disabled) ends retrieval
// for this video only; whatever was collected so far is returned along with
// the top-level and reply counts.
func fetchVideoComments(ctx context.Context, svc *youtube.Service, p *pacer, cfg *Config, videoID string) ([]Comment, int, int) {
	var comments []Comment
	seenReplies := make(map[string]struct{})
	topLevelCount := 0
	replyCount := 0

	pageToken := ""
	for {
		call := svc.CommentThreads.List([]string{"snippet", "replies"}).
			VideoId(videoID).
			MaxResults(cfg.ThreadPageSize).
			TextFormat("html").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			if isCommentsDisabled(err) {
				slog.Info("Comments disabled for video", "video_id", videoID)
			} else {
				slog.Error("Failed to fetch comment threads", "error", err, "video_id", videoID)
			}
			return comments, topLevelCount, replyCount
		}

		for _, thread := range resp.Items {
			if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
				continue
			}

			// The thread ID doubles as the top-level comment's ID.
			top := thread.Snippet.TopLevelComment.Snippet
			comments = append(comments, Comment{
				VideoID:     videoID,
				ID:          thread.Id,
				IsReply:     false,
				Author:      top.AuthorDisplayName,
				Text:        htmlToText(top.TextDisplay),
				LikeCount:   top.LikeCount,
				PublishedAt: top.PublishedAt,
			})
			topLevelCount++

			inlineCount := 0
			if thread.Replies != nil {
				inlineCount = len(thread.Replies.Comments)
				for _, reply := range thread.Replies.Comments {
					if reply.Snippet == nil {
						continue
					}
					comments = append(comments, replyComment(videoID, thread.Id, reply))
					seenReplies[reply.Id] = struct{}{}
					replyCount++
				}
			}

			// The inline preview is bounded; anything beyond it has to come
			// from the reply-listing endpoint.
			if thread.Snippet.TotalReplyCount > int64(inlineCount) {
				added := fetchSupplementalReplies(ctx, svc, p, cfg, videoID, thread.Id, seenReplies, &comments)
				replyCount += added
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
		p.waitThreadPage(ctx)
	}

	slog.Debug("Collected comments for video", "video_id", videoID, "topLevel", topLevelCount, "replies", replyCount)
	return comments, topLevelCount, replyCount
}

// fetchSupplementalReplies pages the reply listing for one parent thread,
// appending replies not already seen inline. A remote error here abandons
// only this thread's supplemental fetch; other threads and the rest of the
// video continue. Returns the number of replies appended.
func fetchSupplementalReplies(ctx context.Context, svc *youtube.Service, p *pacer, cfg *Config, videoID, parentID string, seen map[string]struct{}, comments *[]Comment) int {
	added := 0

	pageToken := ""
	for {
		p.waitReplyPage(ctx)

		call := svc.Comments.List([]string{"snippet"}).
			ParentId(parentID).
			MaxResults(cfg.ReplyPageSize).
			TextFormat("html").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			slog.Warn("Failed to fetch replies for thread", "error", err, "parent_id", parentID, "video_id", videoID)
			return added
		}

		for _, reply := range resp.Items {
			if reply.Snippet == nil {
				continue
			}
			if _, ok := seen[reply.Id]; ok {
				continue
			}
			*comments = append(*comments, replyComment(videoID, parentID, reply))
			seen[reply.Id] = struct{}{}
			added++
		}

		if resp.NextPageToken == "" {
			return added
		}
		pageToken = resp.NextPageToken
	}
}

func replyComment(videoID, parentID string, reply *youtube.Comment) Comment {
	return Comment{
		VideoID:     videoID,
		ID:          reply.Id,
		ParentID:    parentID,
		IsReply:     true,
		Author:      reply.Snippet.AuthorDisplayName,
		Text:        htmlToText(reply.Snippet.TextDisplay),
		LikeCount:   reply.Snippet.LikeCount,
		PublishedAt: reply.Snippet.PublishedAt,
	}
}
