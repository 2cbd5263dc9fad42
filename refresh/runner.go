package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/config"
	"github.com/civicdataworks/lane-swim-tracker/directory"
	"github.com/civicdataworks/lane-swim-tracker/metrics"
	"github.com/civicdataworks/lane-swim-tracker/schedule"
	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

// weekSlots maps the upstream's two week indexes to offsets from the
// current week. The service publishes exactly these two slots.
var weekSlots = []struct {
	Week   int
	Offset int
}{
	{Week: 1, Offset: 0},
	{Week: 2, Offset: 1},
}

// Runner owns the refresh lifecycle: one cycle at startup, then one per
// interval. A cycle that exceeds its wall-clock budget is abandoned; the
// previous snapshot stays authoritative until a cycle fully completes.
type Runner struct {
	directory  *directory.Client
	candidates *directory.Cache
	schedules  *schedule.Client
	normalizer *schedule.Normalizer
	store      *snapshot.Store
	cfg        config.RefreshConfig

	// ReuseDirectory skips the directory re-fetch when a cached candidate
	// list exists.
	ReuseDirectory bool

	logger zerolog.Logger

	mu          sync.Mutex
	lastSuccess time.Time
}

// NewRunner wires a refresh runner.
func NewRunner(
	dir *directory.Client,
	candidates *directory.Cache,
	schedules *schedule.Client,
	normalizer *schedule.Normalizer,
	store *snapshot.Store,
	cfg config.RefreshConfig,
	logger zerolog.Logger,
) *Runner {
	return &Runner{
		directory:  dir,
		candidates: candidates,
		schedules:  schedules,
		normalizer: normalizer,
		store:      store,
		cfg:        cfg,
		logger:     logger.With().Str("component", "refresh").Logger(),
	}
}

// Start runs refresh cycles until ctx is cancelled: one immediately, then
// one per configured interval. Cycle failures are logged, never propagated.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info().
		Dur("interval", r.cfg.Interval()).
		Dur("budget", r.cfg.CycleBudget()).
		Msg("refresh runner started")

	for {
		if err := r.RunCycle(ctx); err != nil {
			r.logger.Error().Err(err).Msg("refresh cycle failed")
		}
		select {
		case <-time.After(r.cfg.Interval()):
		case <-ctx.Done():
			r.logger.Info().Msg("refresh runner stopped")
			return
		}
	}
}

// LastSuccess returns when the last cycle completed, or the zero time if
// none has.
func (r *Runner) LastSuccess() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSuccess
}

// RunCycle executes one full fetch+normalize+write cycle under the
// configured wall-clock budget.
func (r *Runner) RunCycle(ctx context.Context) error {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, r.cfg.CycleBudget())
	defer cancel()

	err := r.runCycle(cctx, start)
	metrics.ObserveRefreshDuration(time.Since(start).Seconds())
	switch {
	case err == nil:
		metrics.IncRefreshCycle("ok")
	case errors.Is(err, context.DeadlineExceeded):
		metrics.IncRefreshCycle("over_budget")
		r.logger.Error().Dur("budget", r.cfg.CycleBudget()).Msg("refresh cycle abandoned: over budget")
	default:
		metrics.IncRefreshCycle("error")
	}
	return err
}

func (r *Runner) runCycle(ctx context.Context, start time.Time) error {
	candidates, err := r.loadCandidates(ctx)
	if err != nil {
		// No candidate list means nothing to do: fatal to this run.
		return fmt.Errorf("candidate facilities: %w", err)
	}
	r.logger.Info().Int("candidates", len(candidates)).Msg("refresh cycle started")

	kept := make([]snapshot.Facility, 0, len(candidates))
	for _, fac := range candidates {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sessions := r.fetchFacilitySessions(ctx, fac.LocationID)
		if len(sessions) == 0 {
			continue
		}
		fac.Sessions = sessions
		kept = append(kept, fac)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := r.store.Write(kept); err != nil {
		return err
	}
	metrics.SetSnapshotFacilities(len(kept))

	r.mu.Lock()
	r.lastSuccess = time.Now()
	r.mu.Unlock()

	r.logger.Info().
		Int("facilities", len(kept)).
		Dur("elapsed", time.Since(start)).
		Msg("refresh cycle complete")
	return nil
}

// fetchFacilitySessions collects the normalized sessions for both week
// slots of one facility. Transport and decode failures are logged and
// skipped; they never fail the run.
func (r *Runner) fetchFacilitySessions(ctx context.Context, locationID int64) []snapshot.Session {
	var sessions []snapshot.Session
	for _, slot := range weekSlots {
		doc, err := r.schedules.FetchWeek(ctx, locationID, slot.Week)
		if err != nil {
			if errors.Is(err, schedule.ErrNoData) {
				continue
			}
			if ctx.Err() != nil {
				return sessions
			}
			r.logger.Warn().
				Int64("location_id", locationID).
				Int("week", slot.Week).
				Err(err).
				Msg("skipping week")
			continue
		}
		weekSessions := r.normalizer.Normalize(doc, slot.Offset, time.Now())
		metrics.AddSessionsNormalized(len(weekSessions))
		sessions = append(sessions, weekSessions...)
	}
	return sessions
}

func (r *Runner) loadCandidates(ctx context.Context) ([]snapshot.Facility, error) {
	if r.ReuseDirectory && r.candidates.Exists() {
		candidates, err := r.candidates.Load()
		if err == nil {
			r.logger.Info().Int("candidates", len(candidates)).Msg("reusing cached candidate list")
			return candidates, nil
		}
		r.logger.Warn().Err(err).Msg("candidate cache unreadable, re-fetching directory")
	}
	candidates, err := r.directory.FetchCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.candidates.Save(candidates); err != nil {
		r.logger.Warn().Err(err).Msg("failed to cache candidate list")
	}
	return candidates, nil
}
