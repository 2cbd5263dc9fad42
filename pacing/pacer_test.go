package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGate_EnforcesMinimumSpacing(t *testing.T) {
	gate := New(30*time.Millisecond, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, gate.Wait(ctx))
	start := time.Now()
	require.NoError(t, gate.Wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestGate_JitterStaysWithinWindow(t *testing.T) {
	gate := New(10*time.Millisecond, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, gate.Wait(ctx))
	for i := 0; i < 3; i++ {
		start := time.Now()
		require.NoError(t, gate.Wait(ctx))
		elapsed := time.Since(start)
		require.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
		// Generous upper bound, slow CI machines included.
		require.Less(t, elapsed, 200*time.Millisecond)
	}
}

func TestGate_JitteredSpacingKeepsMinimum(t *testing.T) {
	// A wide jitter window must not let a long pause followed by a short
	// one compress the gap below min.
	gate := New(20*time.Millisecond, 60*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, gate.Wait(ctx))
	prev := time.Now()
	for i := 0; i < 15; i++ {
		require.NoError(t, gate.Wait(ctx))
		now := time.Now()
		require.GreaterOrEqual(t, now.Sub(prev), 20*time.Millisecond)
		prev = now
	}
}

func TestGate_WaitHonorsCancellation(t *testing.T) {
	gate := New(time.Hour, time.Hour)
	ctx := context.Background()

	require.NoError(t, gate.Wait(ctx))

	cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	require.Error(t, gate.Wait(cctx))
}

func TestUnpaced_NeverWaits(t *testing.T) {
	gate := Unpaced()
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, gate.Wait(ctx))
	}
	require.Less(t, time.Since(start), time.Second)
}
