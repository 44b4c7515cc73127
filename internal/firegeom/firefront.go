package firegeom

import (
	"math"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
)

// FireFront is one polygonal ring of a fire's perimeter: an indexable
// arena of FirePoints plus next/prev index arrays defining traversal order,
// rather than a pointer-linked list (XY_PolyLL_BaseTempl in the original).
// The arena layout lets PointRef address a point by (step, index) and keeps
// that reference valid even after later splices, since removed points are
// unlinked from the ring rather than removed from the slice.
type FireFront struct {
	// Points is the arena: every point ever inserted into this front,
	// including tombstoned ones. Index into this slice is the Index half
	// of a PointRef naming a point in this front's step.
	Points []FirePoint

	next []int32
	prev []int32
	live []bool

	head  int32
	count int32
}

// NewFireFront builds a closed ring from pts in the given order. Must have
// at least 3 points to satisfy the FireFront invariant, but this
// constructor does not itself enforce that — callers assembling a front
// incrementally (e.g. during ignition) call Validate once done.
func NewFireFront(pts []FirePoint) *FireFront {
	n := len(pts)
	ff := &FireFront{
		Points: append([]FirePoint(nil), pts...),
		next:   make([]int32, n),
		prev:   make([]int32, n),
		live:   make([]bool, n),
		head:   0,
		count:  int32(n),
	}
	for i := 0; i < n; i++ {
		ff.next[i] = int32((i + 1) % n)
		ff.prev[i] = int32((i - 1 + n) % n)
		ff.live[i] = true
	}
	return ff
}

// Validate checks the invariants required of a committed FireFront: at
// least 3 live vertices, and no two ring-consecutive vertices coincide.
func (ff *FireFront) Validate() error {
	if ff.count < 3 {
		return fireerrors.Wrap("firegeom", fireerrors.KindGeometry, fireerrors.ErrFrontTooShort)
	}
	bad := false
	ff.Walk(func(idx int32, p *FirePoint) bool {
		next := &ff.Points[ff.next[idx]]
		if p.X == next.X && p.Y == next.Y {
			bad = true
			return false
		}
		return true
	})
	if bad {
		return fireerrors.New("firegeom", fireerrors.KindGeometry, "consecutive vertices coincide")
	}
	return nil
}

// VertexCount returns the number of live (non-tombstoned) vertices.
func (ff *FireFront) VertexCount() int { return int(ff.count) }

// At returns a pointer to the point at arena index idx, live or not.
func (ff *FireFront) At(idx int32) *FirePoint { return &ff.Points[idx] }

// IsLive reports whether the point at arena index idx is still part of the
// ring.
func (ff *FireFront) IsLive(idx int32) bool { return ff.live[idx] }

// Next returns the arena index of the ring-successor of idx.
func (ff *FireFront) Next(idx int32) int32 { return ff.next[idx] }

// Prev returns the arena index of the ring-predecessor of idx.
func (ff *FireFront) Prev(idx int32) int32 { return ff.prev[idx] }

// Walk visits every live point in ring order starting from head, calling fn
// with its arena index. Stops early if fn returns false.
func (ff *FireFront) Walk(fn func(idx int32, p *FirePoint) bool) {
	if ff.count == 0 {
		return
	}
	start := ff.head
	idx := start
	for {
		if !fn(idx, &ff.Points[idx]) {
			return
		}
		idx = ff.next[idx]
		if idx == start {
			return
		}
	}
}

// InsertAfter splices a new point into the ring immediately after idx,
// appending it to the arena and returning its new arena index. O(1): no
// existing point's arena index changes.
func (ff *FireFront) InsertAfter(idx int32, p FirePoint) int32 {
	newIdx := int32(len(ff.Points))
	ff.Points = append(ff.Points, p)
	ff.next = append(ff.next, 0)
	ff.prev = append(ff.prev, 0)
	ff.live = append(ff.live, true)

	succ := ff.next[idx]
	ff.next[idx] = newIdx
	ff.prev[newIdx] = idx
	ff.next[newIdx] = succ
	ff.prev[succ] = newIdx
	ff.count++
	return newIdx
}

// Remove unlinks the point at idx from the ring without shrinking the
// arena, so PointRefs into other steps that still name idx remain valid
// addresses into this front's history (they simply resolve to a tombstoned
// point, which RetrieveStat and friends never see since it is no longer
// walked).
func (ff *FireFront) Remove(idx int32) {
	if !ff.live[idx] {
		return
	}
	p, n := ff.prev[idx], ff.next[idx]
	ff.next[p] = n
	ff.prev[n] = p
	ff.live[idx] = false
	ff.count--
	if ff.head == idx {
		ff.head = n
	}
}

// BoundingBox returns the axis-aligned bounding box of all live vertices.
func (ff *FireFront) BoundingBox() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	ff.Walk(func(idx int32, p *FirePoint) bool {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
		return true
	})
	return
}

// SignedArea returns the shoelace-formula signed area of the ring: positive
// for counter-clockwise winding, negative for clockwise.
func (ff *FireFront) SignedArea() float64 {
	var sum float64
	ff.Walk(func(idx int32, p *FirePoint) bool {
		q := &ff.Points[ff.next[idx]]
		sum += p.X*q.Y - q.X*p.Y
		return true
	})
	return sum / 2.0
}

// Area returns the unsigned area enclosed by the ring.
func (ff *FireFront) Area() float64 { return math.Abs(ff.SignedArea()) }

// IsClockwise reports whether the ring currently winds clockwise.
func (ff *FireFront) IsClockwise() bool { return ff.SignedArea() < 0 }

// Centroid returns the area-weighted centroid of the ring.
func (ff *FireFront) Centroid() (cx, cy float64) {
	area := ff.SignedArea()
	if area == 0 {
		// Degenerate ring (zero enclosed area): fall back to the vertex
		// average so callers always get a usable point.
		var sx, sy float64
		var n float64
		ff.Walk(func(idx int32, p *FirePoint) bool {
			sx += p.X
			sy += p.Y
			n++
			return true
		})
		if n == 0 {
			return 0, 0
		}
		return sx / n, sy / n
	}
	var cxSum, cySum float64
	ff.Walk(func(idx int32, p *FirePoint) bool {
		q := &ff.Points[ff.next[idx]]
		cross := p.X*q.Y - q.X*p.Y
		cxSum += (p.X + q.X) * cross
		cySum += (p.Y + q.Y) * cross
		return true
	})
	factor := 1.0 / (6.0 * area)
	return cxSum * factor, cySum * factor
}

// FixRotation reverses the ring's traversal direction in place if it winds
// clockwise when it should be counter-clockwise (the convention for the
// exterior ring of a fire perimeter), by swapping the next and prev link
// arrays. The swap itself is O(1); the IsClockwise check that gates it is
// O(n). Done once per maintenance pass rather than on every read.
func (ff *FireFront) FixRotation() {
	if !ff.IsClockwise() {
		return
	}
	ff.next, ff.prev = ff.prev, ff.next
}
