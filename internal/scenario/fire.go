package scenario

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
)

// FireState is an ActiveFire's lifecycle state, mirroring the
// tentative/confirmed/deleted shape of the teacher's track lifecycle
// (l5tracks.TrackState) repurposed for ignition-to-burnout instead of
// detection-to-loss.
type FireState string

const (
	// FireIgnited: fronts exist but have not yet taken a propagation step.
	FireIgnited FireState = "ignited"
	// FireSpreading: at least one sub-step has run and at least one vertex
	// is still normal.
	FireSpreading FireState = "spreading"
	// FireBurnedOut: every vertex of every front is stopped.
	FireBurnedOut FireState = "burned_out"
	// FireMerged: this ActiveFire's fronts were absorbed into another
	// ActiveFire during an inter-fire merge; it is retained as a historical
	// record but no longer propagates.
	FireMerged FireState = "merged"
)

// ActiveFire is one independently-tracked fire within a scenario: a stable
// identity that survives inter-fire merges (one of the two originals'
// identities is kept as the survivor, per spec.md's end-to-end merge
// scenario), its lifecycle state, and its ignition time.
type ActiveFire struct {
	ID    uuid.UUID
	State FireState

	IgnitedAt time.Time
	// MergedInto is the surviving ActiveFire's ID if State == FireMerged,
	// uuid.Nil otherwise.
	MergedInto uuid.UUID
}

// NewActiveFire returns a freshly ignited ActiveFire.
func NewActiveFire(ignitedAt time.Time) *ActiveFire {
	return &ActiveFire{ID: uuid.New(), State: FireIgnited, IgnitedAt: ignitedAt}
}

// ScenarioFire is the collection of FireFronts belonging to one ActiveFire
// at the current step: an exterior ring plus zero or more interior holes
// (from self-intersection splits or merges), per spec.md §3/§4.3.
type ScenarioFire struct {
	Fire     *ActiveFire
	Exterior *firegeom.FireFront
	Holes    []*firegeom.FireFront
}

// NewScenarioFire wraps an exterior front under fire.
func NewScenarioFire(fire *ActiveFire, exterior *firegeom.FireFront) *ScenarioFire {
	return &ScenarioFire{Fire: fire, Exterior: exterior}
}

// Fronts returns every front (exterior plus holes) belonging to this fire,
// for callers that need to walk all of them uniformly (e.g.
// PerimeterMaintenance, which runs per-front).
func (sf *ScenarioFire) Fronts() []*firegeom.FireFront {
	fronts := make([]*firegeom.FireFront, 0, 1+len(sf.Holes))
	fronts = append(fronts, sf.Exterior)
	fronts = append(fronts, sf.Holes...)
	return fronts
}

// Area returns the exterior ring's area minus its holes', never negative.
func (sf *ScenarioFire) Area() float64 {
	area := sf.Exterior.Area()
	for _, h := range sf.Holes {
		area -= h.Area()
	}
	if area < 0 {
		return 0
	}
	return area
}

// PerimeterLength returns the total (exterior + interior) perimeter length
// in the front's coordinate units.
func (sf *ScenarioFire) PerimeterLength() float64 {
	var total float64
	for _, f := range sf.Fronts() {
		f.Walk(func(idx int32, p *firegeom.FirePoint) bool {
			q := f.At(f.Next(idx))
			total += dist(p.X, p.Y, q.X, q.Y)
			return true
		})
	}
	return total
}

// ActivePerimeterLength returns the portion of the total perimeter whose
// vertices have not stopped (status == normal at both endpoints of the
// edge), the "active vs inactive perimeter" statistic of spec.md §6.2.
func (sf *ScenarioFire) ActivePerimeterLength() float64 {
	var total float64
	for _, f := range sf.Fronts() {
		f.Walk(func(idx int32, p *firegeom.FirePoint) bool {
			q := f.At(f.Next(idx))
			if !p.Status.Stopped() && !q.Status.Stopped() {
				total += dist(p.X, p.Y, q.X, q.Y)
			}
			return true
		})
	}
	return total
}

// AllStopped reports whether every vertex of every front is stopped.
func (sf *ScenarioFire) AllStopped() bool {
	allStopped := true
	for _, f := range sf.Fronts() {
		f.Walk(func(idx int32, p *firegeom.FirePoint) bool {
			if !p.Status.Stopped() {
				allStopped = false
				return false
			}
			return true
		})
		if !allStopped {
			return false
		}
	}
	return true
}

func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}
