package main

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer spaces remote calls with fixed delays. Each limiter has burst 1, so
// the first wait returns immediately and subsequent waits block for the
// configured interval. There is no adaptive backoff; a quota error is handled
// by the caller, not retried.
type pacer struct {
	videos      *rate.Limiter
	threadPages *rate.Limiter
	replyPages  *rate.Limiter
}

func newPacer(cfg *Config) *pacer {
	return &pacer{
		videos:      newDelayLimiter(cfg.videoDelay()),
		threadPages: newDelayLimiter(cfg.threadPageDelay()),
		replyPages:  newDelayLimiter(cfg.replyPageDelay()),
	}
}

func newDelayLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

func (p *pacer) waitVideo(ctx context.Context) {
	_ = p.videos.Wait(ctx)
}

func (p *pacer) waitThreadPage(ctx context.Context) {
	_ = p.threadPages.Wait(ctx)
}

func (p *pacer) waitReplyPage(ctx context.Context) {
	_ = p.replyPages.Wait(ctx)
}
