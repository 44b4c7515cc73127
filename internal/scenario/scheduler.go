package scenario

import (
	"time"

	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/grid"
)

// Outcome is the terminal (or non-terminal) result of one Scheduler
// decision, matching the four Complete* codes plus Running/Cancelled of
// spec.md §4.10/§6.4.
type Outcome int

const (
	Running Outcome = iota
	Cancelled
	CompleteEndTime
	CompleteExtents
	CompleteAssets
	CompleteStopCondition
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	case CompleteEndTime:
		return "complete"
	case CompleteExtents:
		return "complete_extents"
	case CompleteAssets:
		return "complete_assets"
	case CompleteStopCondition:
		return "complete_stopcondition"
	default:
		return "unknown"
	}
}

// Scheduler chooses each step's wall-clock Δt and decides when a scenario
// run terminates. Grounded on the plain field-comparison style of
// spec.md §4.10 itself — there is no teacher analogue to a simulation
// scheduler; this mirrors the deterministic-arithmetic style
// internal/lidar/l3grid/background_drift.go uses for its own threshold
// decisions.
type Scheduler struct {
	Numeric fireconfig.Numeric
	Gusting *grid.GustingModel

	startTime time.Time
	endTime   time.Time
}

// NewScheduler returns a Scheduler bounded by [start, end).
func NewScheduler(numeric fireconfig.Numeric, gusting *grid.GustingModel, start, end time.Time) *Scheduler {
	return &Scheduler{Numeric: numeric, Gusting: gusting, startTime: start, endTime: end}
}

// NextStep chooses the Δt and target time for the next step given the
// current time t, whether the scenario is in its acceleration phase (any
// ignition's instantaneous ROS is below 90% of ROSeq), and the display
// interval boundary. It never steps past end time, a display boundary, or
// (if gusting is configured) the next gust transition.
func (s *Scheduler) NextStep(t time.Time, accelerating bool) (dt time.Duration, tNew time.Time) {
	displayInterval := time.Duration(s.Numeric.GetDisplayIntervalSeconds() * float64(time.Second))
	candidate := t.Add(displayInterval)

	if nextDisplay := nextBoundary(s.startTime, t, displayInterval); nextDisplay.Before(candidate) {
		candidate = nextDisplay
	}
	if accelerating && s.Numeric.TemporalThresholdAccel != nil {
		accelCap := t.Add(time.Duration(*s.Numeric.TemporalThresholdAccel * float64(time.Second)))
		if accelCap.Before(candidate) {
			candidate = accelCap
		}
	}
	if s.Gusting != nil {
		if nextGust := s.Gusting.NextEventTime(t); nextGust.After(t) && nextGust.Before(candidate) {
			candidate = nextGust
		}
	}
	if s.endTime.Before(candidate) {
		candidate = s.endTime
	}
	if candidate.Before(t) {
		candidate = t
	}
	return candidate.Sub(t), candidate
}

// nextBoundary returns the next display-interval-aligned time strictly after
// t, measured from start.
func nextBoundary(start, t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return t
	}
	elapsed := t.Sub(start)
	steps := elapsed/interval + 1
	return start.Add(time.Duration(steps) * interval)
}

// CheckTermination evaluates the non-stop-condition termination predicates
// of spec.md §4.10: end time reached, or any front has reached the grid
// boundary with BOUNDARY_STOP on. Asset and user-stop-condition termination
// are evaluated by their own packages and passed in by the caller (they
// need scenario-wide context this package does not own).
func (s *Scheduler) CheckTermination(t time.Time, boundaryStop bool, anyFrontAtBoundary bool) Outcome {
	if boundaryStop && anyFrontAtBoundary {
		return CompleteExtents
	}
	if !t.Before(s.endTime) {
		return CompleteEndTime
	}
	return Running
}
