// timestep.go implements ScenarioTimeStep.Advance (spec.md §4.9): the
// eight-stage per-step pipeline. Grounded directly on
// internal/lidar/pipeline/tracking_pipeline.go's seven-stage frame callback
// — same shape (numbered stages, each guarded, each logging via
// internal/monitoring), generalized from one stage per frame-processing
// concern to one stage per propagation concern.
package scenario

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/monitoring"
	"github.com/wise-wildfire/firegrowth/internal/perimeter"
	"github.com/wise-wildfire/firegrowth/internal/propagate"
)

// AssetObserver is the hook ScenarioTimeStep.Advance calls after
// PerimeterMaintenance and merge evaluation (stage 6 of spec.md §4.9). The
// concrete AssetTracker lives in internal/asset; this package only depends
// on the narrow interface to avoid an import cycle (asset needs to read
// scenario state, scenario must not need to know about asset internals).
type AssetObserver interface {
	Observe(step uint64, t time.Time, fires map[uuid.UUID]*ScenarioFire)
	Satisfied() bool
}

// Scenario holds everything ScenarioTimeStep.Advance needs across steps:
// the live fires, the collaborators, and the step history used for prior-
// step links and purge bookkeeping.
type Scenario struct {
	Config     fireconfig.Scenario
	Propagator *propagate.Propagator
	Scheduler  *Scheduler
	Stops      *StopConditions
	Assets     AssetObserver // nil if no assets configured
	Lock       *Lock

	// Fires is the live ScenarioFire set, keyed by ActiveFire ID.
	Fires map[uuid.UUID]*ScenarioFire

	CurrentStep uint64
	CurrentTime time.Time
	accelerating bool
}

// Advance runs one ScenarioTimeStep per spec.md §4.9. It acquires the
// simulation regime of Lock for its duration and releases it before
// returning, even on error.
func (s *Scenario) Advance(ctx context.Context) (Outcome, error) {
	if err := s.Lock.BeginSimulation(); err != nil {
		return Running, err
	}
	defer s.Lock.EndSimulation()

	// Before the first step, the AssetTracker also observes the step-0
	// ignition fronts, so critical-path walks can reach back to ignition.
	if s.Assets != nil && s.CurrentStep == 0 {
		s.Assets.Observe(0, s.CurrentTime, s.Fires)
	}

	// Stage 1: Scheduler selects dt and target wall-clock t_new.
	dt, tNew := s.Scheduler.NextStep(s.CurrentTime, s.accelerating)
	monitoring.Logf("scenario: step %d advancing %s -> %s (dt=%s)", s.CurrentStep, s.CurrentTime, tNew, dt)

	// Stage 2: per-ActiveFire sample/ellipse/propagate, recording history.
	if err := s.propagateAll(ctx, dt, tNew); err != nil {
		return Running, err
	}

	// Stage 3: PerimeterMaintenance on every front.
	s.maintainAll()

	// Stage 4: merges across ActiveFires.
	s.mergeAll()

	// Stage 5: per-step statistics.
	stats := s.computeStats(tNew)

	// Stage 6: AssetTracker observes post-maintenance state.
	if s.Assets != nil {
		s.Assets.Observe(s.CurrentStep+1, tNew, s.Fires)
	}

	// Stage 7: StopConditions evaluated against the new state.
	var outcome Outcome
	if reason := s.Stops.Evaluate(stats); reason != "" {
		monitoring.Logf("scenario: stop condition %q fired at step %d", reason, s.CurrentStep+1)
		outcome = CompleteStopCondition
	} else if s.Assets != nil && s.Assets.Satisfied() {
		outcome = CompleteAssets
	} else {
		outcome = s.Scheduler.CheckTermination(tNew, s.Config.Flags.BoundaryStop, s.anyFrontAtBoundary())
	}

	s.CurrentStep++
	s.CurrentTime = tNew

	// Stage 8: purge bookkeeping is the caller's responsibility once history
	// retention policy (which steps an exporter or asset still needs) is
	// known; Scenario itself never discards a step on its own initiative.

	return outcome, nil
}

// propagateAll runs the Propagator over every live fire's exterior and hole
// fronts, reassigning sf.Exterior/sf.Holes to the newly built fronts rather
// than overwriting the old fronts in place, so that any pointer retained
// elsewhere (e.g. AssetTracker's per-step history snapshots) keeps pointing
// at the prior step's points instead of having them mutated out from under
// it. Fires are advanced in their own goroutine when
// Config.Flags.SingleThreading is off and Config.Numeric.GetMultithreading()
// allows more than one worker — grounded on the teacher's
// worker-pool-gated-by-a-flag pattern (internal/lidar/l3grid's background
// workers are similarly toggled by a single-threading config flag).
func (s *Scenario) propagateAll(ctx context.Context, dt time.Duration, tNew time.Time) error {
	parallel := !s.Config.Flags.SingleThreading && s.Config.Numeric.GetMultithreading() > 1

	var wg sync.WaitGroup
	errs := make(chan error, len(s.Fires))
	for _, sf := range s.Fires {
		sf := sf
		if sf.Fire.State == FireBurnedOut || sf.Fire.State == FireMerged {
			continue
		}
		run := func() {
			nextExterior, err := s.propagateFront(ctx, sf.Fire.ID.String(), sf.Exterior, dt, tNew)
			if err != nil {
				errs <- err
				return
			}
			sf.Exterior = nextExterior
			for i, hole := range sf.Holes {
				nextHole, err := s.propagateFront(ctx, sf.Fire.ID.String(), hole, dt, tNew)
				if err != nil {
					errs <- err
					return
				}
				sf.Holes[i] = nextHole
			}
			if sf.AllStopped() {
				sf.Fire.State = FireBurnedOut
			} else {
				sf.Fire.State = FireSpreading
			}
		}
		if parallel {
			wg.Add(1)
			go func() { defer wg.Done(); run() }()
		} else {
			run()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// propagateFront advances every live vertex of front by one sub-step,
// building a new FireFront whose points carry PrevPoint back-references
// into front's arena at the prior step index. A per-vertex sampling error is
// recoverable per spec.md §7: the vertex is marked no_fuel at its prior
// position and the walk continues rather than aborting the step. A
// context-cancellation error is unrecoverable and is returned to the caller,
// aborting the step without publishing a partial front.
func (s *Scenario) propagateFront(ctx context.Context, fireID string, front *firegeom.FireFront, dt time.Duration, tNew time.Time) (*firegeom.FireFront, error) {
	var next []firegeom.FirePoint
	var aborted error

	front.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		if err := ctx.Err(); err != nil {
			aborted = err
			return false
		}
		predIdx, succIdx := front.Prev(idx), front.Next(idx)
		pred, succ := front.At(predIdx), front.At(succIdx)
		stepped, err := s.Propagator.StepVertex(ctx, fireID, "", *p, *pred, *succ, dt, tNew)
		if err != nil {
			monitoring.Logf("scenario: vertex %d sampling failed (%v), marking no_fuel", idx, err)
			stepped = *p
			stepped.Status = firegeom.StatusNoFuel
		}
		stepped.PrevPoint = firegeom.PointRef{Step: s.CurrentStep, Index: idx}
		stepped.SuccPoint = firegeom.NoRef
		next = append(next, stepped)
		return true
	})
	if aborted != nil {
		return nil, aborted
	}

	return firegeom.NewFireFront(next), nil
}

// maintainAll runs PerimeterMaintenance on every live front.
func (s *Scenario) maintainAll() {
	opts := perimeter.Options{
		PerimeterSpacing:             s.Config.Numeric.GetPerimeterSpacing(),
		PerimeterResolution:          s.Config.Numeric.GetPerimeterResolution(),
		SuppressTightConcaveAddPoint: s.Config.Flags.SuppressTightConcaveAddPoint,
	}
	for _, sf := range s.Fires {
		for _, front := range sf.Fronts() {
			if front.VertexCount() >= 3 {
				perimeter.Maintain(front, opts)
			}
		}
	}
}

// mergeAll evaluates every pair of distinct, still-spreading ActiveFires for
// overlap and merges them, per spec.md §4.8 step 4 / §4.3. The surviving
// ActiveFire is whichever of the pair was ignited first, matching the
// end-to-end merge scenario's requirement that the merged id equal one of
// the two originals.
func (s *Scenario) mergeAll() {
	ids := make([]uuid.UUID, 0, len(s.Fires))
	for id := range s.Fires {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := s.Fires[ids[i]], s.Fires[ids[j]]
			if a == nil || b == nil {
				continue
			}
			if a.Fire.State == FireMerged || b.Fire.State == FireMerged {
				continue
			}
			if a.Fire.State == FireBurnedOut || b.Fire.State == FireBurnedOut {
				continue
			}
			if !perimeter.Overlaps(a.Exterior, b.Exterior) {
				continue
			}
			merged := perimeter.Merge(a.Exterior, b.Exterior)
			if merged == nil {
				continue
			}
			survivor, absorbed := a, b
			if b.Fire.IgnitedAt.Before(a.Fire.IgnitedAt) {
				survivor, absorbed = b, a
			}
			survivor.Exterior = merged
			absorbed.Fire.State = FireMerged
			absorbed.Fire.MergedInto = survivor.Fire.ID
			monitoring.Logf("scenario: merged fire %s into %s", absorbed.Fire.ID, survivor.Fire.ID)
		}
	}
}

// computeStats aggregates per-step scenario-wide statistics across every
// still-live fire, per spec.md §4.9 step 5 / §6.2.
func (s *Scenario) computeStats(tNew time.Time) StepStats {
	var area, perim float64
	for _, sf := range s.Fires {
		if sf.Fire.State == FireMerged {
			continue
		}
		area += sf.Area()
		perim += sf.PerimeterLength()
	}
	return StepStats{
		Area:            area,
		PerimeterLength: perim,
		StepIndex:       int(s.CurrentStep) + 1,
		ElapsedSeconds:  tNew.Sub(s.Config.StartTime()).Seconds(),
	}
}

// anyFrontAtBoundary always reports false: this package reads no grid
// extents, so no front is ever found at the grid boundary and BOUNDARY_STOP
// never ends a run with CompleteExtents.
func (s *Scenario) anyFrontAtBoundary() bool {
	return false
}
