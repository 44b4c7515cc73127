package firegeom

import "math"

// edgeBucketSize is the bucket cell side length used by SelfIntersects,
// tuned for the typical metre-scale vertex spacing this package operates
// at rather than the metre/centimetre LiDAR scale of VoxelGrid, but the
// bucketing shape is the same: floor(coord/size) keys into a map.
const edgeBucketSize = 10.0

type edgeKey struct {
	a, b int32 // arena indices of the edge's endpoints, a = edge start
}

// SelfIntersects reports whether any two non-adjacent edges of the ring
// cross, using a spatial bucket index to avoid the O(n^2) all-pairs test:
// edges are dropped into grid cells keyed by floor(coord/edgeBucketSize)
// along their bounding box, the same bucketing shape l4perception's
// VoxelGrid uses for point decimation, applied here to edges instead of
// points so only edges sharing a cell are ever compared.
func (ff *FireFront) SelfIntersects() bool {
	_, _, ok := ff.FindSelfIntersection()
	return ok
}

// FindSelfIntersection is SelfIntersects but also returns the arena indices
// of the two edges' start vertices (a's edge is a->next(a), b's edge is
// b->next(b)) for the first crossing pair found, so PerimeterMaintenance can
// clip or split at the crossing. ok is false if no crossing exists.
func (ff *FireFront) FindSelfIntersection() (a, b int32, ok bool) {
	type edge struct {
		idx        int32
		ax, ay, bx, by float64
	}
	var edges []edge
	ff.Walk(func(idx int32, p *FirePoint) bool {
		q := &ff.Points[ff.next[idx]]
		edges = append(edges, edge{idx: idx, ax: p.X, ay: p.Y, bx: q.X, by: q.Y})
		return true
	})
	if len(edges) < 4 {
		return 0, 0, false
	}

	buckets := make(map[[2]int64][]int)
	cellOf := func(x, y float64) [2]int64 {
		return [2]int64{int64(math.Floor(x / edgeBucketSize)), int64(math.Floor(y / edgeBucketSize))}
	}
	for i, e := range edges {
		minX, maxX := math.Min(e.ax, e.bx), math.Max(e.ax, e.bx)
		minY, maxY := math.Min(e.ay, e.by), math.Max(e.ay, e.by)
		c0 := cellOf(minX, minY)
		c1 := cellOf(maxX, maxY)
		for cx := c0[0]; cx <= c1[0]; cx++ {
			for cy := c0[1]; cy <= c1[1]; cy++ {
				key := [2]int64{cx, cy}
				buckets[key] = append(buckets[key], i)
			}
		}
	}

	n := len(edges)
	tested := make(map[[2]int]bool)
	for _, bucket := range buckets {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				ei, ej := bucket[i], bucket[j]
				if ei > ej {
					ei, ej = ej, ei
				}
				// Adjacent edges (share an endpoint in ring order) always
				// "touch" and are not a self-intersection.
				if (ej-ei == 1) || (ei == 0 && ej == n-1) {
					continue
				}
				key := [2]int{ei, ej}
				if tested[key] {
					continue
				}
				tested[key] = true
				if segmentsIntersect(edges[ei].ax, edges[ei].ay, edges[ei].bx, edges[ei].by,
					edges[ej].ax, edges[ej].ay, edges[ej].bx, edges[ej].by) {
					return edges[ei].idx, edges[ej].idx, true
				}
			}
		}
	}
	return 0, 0, false
}

func segmentsIntersect(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	o1 := orientation(ax, ay, bx, by, cx, cy)
	o2 := orientation(ax, ay, bx, by, dx, dy)
	o3 := orientation(cx, cy, dx, dy, ax, ay)
	o4 := orientation(cx, cy, dx, dy, bx, by)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(ax, ay, cx, cy, bx, by) {
		return true
	}
	if o2 == 0 && onSegment(ax, ay, dx, dy, bx, by) {
		return true
	}
	if o3 == 0 && onSegment(cx, cy, ax, ay, dx, dy) {
		return true
	}
	if o4 == 0 && onSegment(cx, cy, bx, by, dx, dy) {
		return true
	}
	return false
}

// orientation returns the sign of the cross product (b-a) x (c-a): 1 for
// counter-clockwise, -1 for clockwise, 0 for collinear.
func orientation(ax, ay, bx, by, cx, cy float64) int {
	val := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	switch {
	case val > 1e-12:
		return 1
	case val < -1e-12:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether point p lies on segment (a, b), given they are
// already known to be collinear.
func onSegment(ax, ay, px, py, bx, by float64) bool {
	return px <= math.Max(ax, bx) && px >= math.Min(ax, bx) &&
		py <= math.Max(ay, by) && py >= math.Min(ay, by)
}
