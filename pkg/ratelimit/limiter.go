// Package ratelimit isolates the politeness policy applied between
// remote calls. The orchestrator and the archiver invoke the limiter
// after every fetch instead of sleeping inline, which keeps the
// extraction logic free of timing concerns.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks until the next remote call is allowed to proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Interval enforces a minimum spacing between consecutive calls.
type Interval struct {
	limiter *rate.Limiter
}

// NewInterval creates a limiter that allows one call per interval. A
// non-positive interval disables limiting entirely.
func NewInterval(interval time.Duration) *Interval {
	if interval <= 0 {
		return &Interval{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Interval{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the interval since the previous call has elapsed, or
// the context is cancelled.
func (i *Interval) Wait(ctx context.Context) error {
	return i.limiter.Wait(ctx)
}
