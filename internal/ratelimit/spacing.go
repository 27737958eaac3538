// Package ratelimit enforces the minimum spacing between consecutive remote
// calls. One Spacer instance is shared process-wide and injected into the
// orchestrator, so every call attempt advances the same clock.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinSpacing is the minimum gap between remote dispatches.
const DefaultMinSpacing = 800 * time.Millisecond

// Spacer hands out the wait a caller must serve before its next dispatch.
type Spacer struct {
	lim *rate.Limiter
}

// NewSpacer creates a spacer with the given minimum gap; non-positive values
// use DefaultMinSpacing.
func NewSpacer(minSpacing time.Duration) *Spacer {
	if minSpacing <= 0 {
		minSpacing = DefaultMinSpacing
	}
	return &Spacer{lim: rate.NewLimiter(rate.Every(minSpacing), 1)}
}

// TryAcquire reserves the next dispatch slot as of now and returns how long
// the caller must wait before using it. Zero means dispatch immediately. The
// reservation is committed, so concurrent callers never compute their wait
// from a stale clock.
func (s *Spacer) TryAcquire(now time.Time) time.Duration {
	return s.lim.ReserveN(now, 1).DelayFrom(now)
}
