package perimeter

import (
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
)

// Overlaps reports whether two fronts' bounding boxes intersect, the cheap
// pre-filter used before the more expensive containment test in Merge —
// grounded on l5tracks's track-merge candidate pairing, which also screens
// pairs by bounding-box overlap before running its full matching cost.
func Overlaps(a, b *firegeom.FireFront) bool {
	aMinX, aMinY, aMaxX, aMaxY := a.BoundingBox()
	bMinX, bMinY, bMaxX, bMaxY := b.BoundingBox()
	return aMinX <= bMaxX && bMinX <= aMaxX && aMinY <= bMaxY && bMinY <= aMaxY
}

// Merge computes the union of two overlapping fronts per spec.md §4.8 step
// 4: every vertex of a strictly inside b, and every vertex of b strictly
// inside a, is discarded; the new ring is a's surviving vertices in a's ring
// order followed by b's surviving vertices in b's ring order. The rings are
// not cut or rejoined at their crossing points, and no new intersection
// vertices are synthesized there. Returns nil if fewer than three vertices
// survive. This is an approximation of a full polygon-clipping union, adequate for the
// perimeter-maintenance pass's tolerance for order-epsilon geometry,
// documented as an implementation choice rather than a guaranteed exact
// union.
func Merge(a, b *firegeom.FireFront) *firegeom.FireFront {
	var merged []firegeom.FirePoint
	a.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		if !Contains(b, p.X, p.Y) {
			merged = append(merged, *p)
		}
		return true
	})
	b.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		if !Contains(a, p.X, p.Y) {
			merged = append(merged, *p)
		}
		return true
	})
	if len(merged) < 3 {
		return nil
	}
	return firegeom.NewFireFront(merged)
}

// Contains reports whether (x, y) lies strictly inside ff's ring, via a
// standard ray-cast even-odd test.
func Contains(ff *firegeom.FireFront, x, y float64) bool {
	inside := false
	ff.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		q := ff.At(ff.Next(idx))
		if (p.Y > y) != (q.Y > y) {
			xCross := (q.X-p.X)*(y-p.Y)/(q.Y-p.Y) + p.X
			if x < xCross {
				inside = !inside
			}
		}
		return true
	})
	return inside
}
