// Package perimeter implements PerimeterMaintenance (spec.md §4.8): the
// coalesce / densify / self-intersection-cleanup / inter-fire-merge /
// rotation-fix pipeline run on every FireFront after each sub-step.
//
// Shape grounded on internal/lidar/l4perception's clustering and VoxelGrid
// decimation style (space-partition first, then per-bucket merge) for the
// self-intersection sweep, and on l5tracks's track-merge candidate
// pre-filter (bounding-box overlap before the expensive geometric test) for
// the inter-fire merge step.
package perimeter

import (
	"math"

	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/monitoring"
)

// Options bundles the tuning values PerimeterMaintenance needs.
type Options struct {
	PerimeterSpacing             float64 // minimum spacing before coalescing.
	PerimeterResolution          float64 // maximum spacing before densifying.
	SuppressTightConcaveAddPoint bool
}

// Maintain runs coalesce, densify, self-intersection cleanup, and rotation
// fix on a single front, in that order, per spec.md §4.8 steps 1-3 and 5.
// Inter-fire merge (step 4) operates across fronts and is Merge below.
func Maintain(ff *firegeom.FireFront, opts Options) {
	coalesce(ff, opts.PerimeterSpacing)
	densify(ff, opts.PerimeterResolution, opts.SuppressTightConcaveAddPoint)
	cleanupSelfIntersections(ff)
	ff.FixRotation()
}

// coalesce removes vertices whose distance to both neighbors is below
// perimeterSpacing, per spec.md §4.8 step 1. Runs to a fixed point: removing
// one vertex can bring its former neighbors close enough together to
// qualify too.
func coalesce(ff *firegeom.FireFront, spacing float64) {
	if spacing <= 0 {
		return
	}
	for {
		var toRemove []int32
		ff.Walk(func(idx int32, p *firegeom.FirePoint) bool {
			if ff.VertexCount() <= 3 {
				return false
			}
			predIdx, succIdx := ff.Prev(idx), ff.Next(idx)
			if predIdx == idx || succIdx == idx {
				return true
			}
			pred, succ := ff.At(predIdx), ff.At(succIdx)
			if dist(*p, *pred) < spacing && dist(*p, *succ) < spacing {
				toRemove = append(toRemove, idx)
			}
			return true
		})
		if len(toRemove) == 0 {
			return
		}
		for _, idx := range toRemove {
			if ff.VertexCount() <= 3 {
				break
			}
			if ff.IsLive(idx) {
				ff.Remove(idx)
			}
		}
	}
}

// densify inserts midpoints between neighbors farther apart than
// resolution, per spec.md §4.8 step 2. New points carry no PrevPoint link
// (they have no propagation history of their own). When suppressConcave is
// set, a midpoint is skipped on edges whose turn angle at both endpoints is
// sharply concave (the front folding back on itself locally) to avoid
// packing vertices into a tight re-entrant notch.
func densify(ff *firegeom.FireFront, resolution float64, suppressConcave bool) {
	if resolution <= 0 {
		return
	}
	var edges []int32
	ff.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		edges = append(edges, idx)
		return true
	})
	for _, idx := range edges {
		if !ff.IsLive(idx) {
			continue
		}
		succIdx := ff.Next(idx)
		p, q := ff.At(idx), ff.At(succIdx)
		d := dist(*p, *q)
		if d <= resolution {
			continue
		}
		if suppressConcave && isTightConcave(ff, idx, succIdx) {
			continue
		}
		n := int(math.Ceil(d / resolution))
		for i := 1; i < n; i++ {
			frac := float64(i) / float64(n)
			mid := firegeom.NewFirePoint(p.X+(q.X-p.X)*frac, p.Y+(q.Y-p.Y)*frac)
			idx = ff.InsertAfter(idx, mid)
		}
	}
}

// isTightConcave reports whether the edge from->to sits between two sharp
// turns (the path turns by more than 2 radians at both endpoints), the shape
// SUPPRESS_TIGHT_CONCAVE_ADDPOINT leaves alone. turnAngle is unsigned, so
// the turn direction is not checked: sharp convex turns qualify as well as
// concave ones.
func isTightConcave(ff *firegeom.FireFront, from, to int32) bool {
	const concaveThresholdRadians = 2.0 // ~115 degrees past straight
	fromTurn := turnAngle(*ff.At(ff.Prev(from)), *ff.At(from), *ff.At(to))
	toTurn := turnAngle(*ff.At(from), *ff.At(to), *ff.At(ff.Next(to)))
	return fromTurn > concaveThresholdRadians && toTurn > concaveThresholdRadians
}

// turnAngle returns the unsigned angle (radians) the path a->b->c turns
// through at b.
func turnAngle(a, b, c firegeom.FirePoint) float64 {
	v1x, v1y := b.X-a.X, b.Y-a.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y
	n1, n2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

// cleanupSelfIntersections detects edge-edge crossings and clips off small
// collapsed loops, per spec.md §4.8 step 3(a). When a crossing's loop
// encloses significant area, cleanup stops and leaves that crossing in
// place: the front is not split into two fronts, here or elsewhere in this
// package.
func cleanupSelfIntersections(ff *firegeom.FireFront) {
	const significantAreaFraction = 0.05
	for pass := 0; pass < 8; pass++ {
		idxA, idxB, ok := ff.FindSelfIntersection()
		if !ok {
			return
		}
		loopArea, totalArea := loopAreaBetween(ff, idxA, idxB), ff.Area()
		if totalArea > 0 && loopArea/totalArea > significantAreaFraction {
			monitoring.Logf("perimeter: self-intersection encloses %.1f%% of front area, leaving for split", 100*loopArea/totalArea)
			return
		}
		clipLoop(ff, idxA, idxB)
	}
}

// loopAreaBetween estimates the area enclosed by walking from a to b, used
// only to decide whether a detected crossing is a "small collapsed loop"
// (clip) or "significant area" (left in place).
func loopAreaBetween(ff *firegeom.FireFront, a, b int32) float64 {
	var sum float64
	idx := a
	for {
		next := ff.Next(idx)
		p, q := ff.At(idx), ff.At(next)
		sum += p.X*q.Y - q.X*p.Y
		if next == b {
			break
		}
		idx = next
	}
	return math.Abs(sum / 2.0)
}

// clipLoop discards the collapsed loop between two crossing edges a->next(a)
// and b->next(b): every vertex from next(a) through b inclusive is removed,
// leaving a linked directly to next(b).
func clipLoop(ff *firegeom.FireFront, a, b int32) {
	end := ff.Next(b)
	for i := 0; i < ff.VertexCount()+1; i++ {
		if ff.VertexCount() <= 3 {
			return
		}
		idx := ff.Next(a)
		if idx == end || idx == a {
			return
		}
		ff.Remove(idx)
	}
}

func dist(a, b firegeom.FirePoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
