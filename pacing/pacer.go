// Package pacing gates outbound requests to the upstream open-data service.
// The pause between requests is a politeness contract with the publisher,
// not a performance knob.
package pacing

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate enforces a randomized spacing between requests: every gap between
// consecutive calls lands in [min, max]. Tests substitute a zero-delay gate.
type Gate struct {
	limiter *rate.Limiter
	minimum time.Duration
	jitter  time.Duration

	mu   sync.Mutex
	rng  *rand.Rand
	prev time.Time
}

// New creates a gate with the given spacing window. Callers observe at
// least min between requests and at most roughly max.
func New(min, max time.Duration) *Gate {
	if max < min {
		max = min
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Every(min), 1),
		minimum: min,
		jitter:  max - min,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Unpaced returns a gate that never waits.
func Unpaced() *Gate {
	return &Gate{
		limiter: rate.NewLimiter(rate.Inf, 1),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until the caller may issue the next request, or until ctx is
// cancelled. The jitter is part of the enforced interval: the gate sleeps
// until the previous request time plus min plus this call's jitter, so a
// large pause followed by a small one can never compress the gap below min.
func (g *Gate) Wait(ctx context.Context) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	target := g.prev.Add(g.minimum + g.randJitterLocked())
	g.mu.Unlock()

	if d := time.Until(target); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.mu.Lock()
	g.prev = time.Now()
	g.mu.Unlock()
	return nil
}

func (g *Gate) randJitterLocked() time.Duration {
	if g.jitter <= 0 {
		return 0
	}
	return time.Duration(g.rng.Int63n(int64(g.jitter)))
}
