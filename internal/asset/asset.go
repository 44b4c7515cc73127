// Package asset tracks arrival of a fire's perimeter at host-supplied
// asset geometries (points, lines, polygons) and, once arrived, walks a
// point's PrevPoint history backward to reconstruct the critical path the
// fire took to reach it. Direct Go port of
// _examples/original_source/cpp/ScenarioAsset.cpp's AssetGeometryNode,
// generalized from the original's boost::intrusive_ptr-held COM geometry to
// a plain value type and from its MinNode-linked-list membership to plain
// slices.
package asset

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/perimeter"
	"github.com/wise-wildfire/firegrowth/internal/scenario"
)

// criticalPathEpsilon is the distance-tie-break threshold used when
// choosing between a point's two history-carrying neighbors, carried
// verbatim from the original's #define EPSILON (1e-4).
const criticalPathEpsilon = 1e-4

// GeometryKind is the shape of one asset's geometry.
type GeometryKind int

const (
	GeometryPoint GeometryKind = iota
	GeometryLine
	GeometryPolygon
)

// Geometry is one asset's shape in the scenario's coordinate system: a
// single vertex for GeometryPoint, an ordered vertex chain for
// GeometryLine, or a closed ring for GeometryPolygon.
type Geometry struct {
	Kind     GeometryKind
	Vertices []struct{ X, Y float64 }
}

// AssetGeometryNode is one tracked geometry: whether/when the fire reached
// it, and the point+step+fire it reached it at, which anchors the backward
// walk BuildCriticalPath performs.
type AssetGeometryNode struct {
	Geometry Geometry

	Arrived     bool
	ArrivalTime time.Time
	// ClosestPoint is recorded by value (not just a pointer) so the
	// arrival location survives even once the step it was computed at is
	// no longer retained, matching the original's own rationale for
	// keeping m_closestPoint as a value alongside the pointer.
	ClosestPoint firegeom.FirePoint

	closestFireID uuid.UUID
	closestStep   uint64
	closestIndex  int32
}

// Asset is a named group of geometries plus the stop-condition arithmetic
// the original expressed as the single m_operation field: Operation == -1
// means every geometry in the group must be reached; Operation > 0 means
// at least that many of the group's geometries must be reached; any other
// value (0 or negative, besides -1) means this asset never contributes to
// termination.
type Asset struct {
	Name       string
	Operation  int
	Geometries []*AssetGeometryNode
}

func (a *Asset) reachedCount() int {
	n := 0
	for _, g := range a.Geometries {
		if g.Arrived {
			n++
		}
	}
	return n
}

// satisfied reports whether a's own stop-condition arithmetic is met.
func (a *Asset) satisfied() bool {
	switch {
	case a.Operation == -1:
		return len(a.Geometries) > 0 && a.reachedCount() == len(a.Geometries)
	case a.Operation > 0:
		return a.reachedCount() >= a.Operation
	default:
		return false
	}
}

type stepSnapshot struct {
	time  time.Time
	fires map[uuid.UUID]*firegeom.FireFront // exterior only; see DESIGN.md
}

// AssetTracker implements scenario.AssetObserver: it watches every live
// fire's exterior front at each step for arrival at a tracked Asset's
// geometry, and retains enough per-step front history to let
// BuildCriticalPath walk a point's PrevPoint chain all the way back to
// ignition.
type AssetTracker struct {
	Assets []*Asset

	history map[uint64]stepSnapshot
}

// NewAssetTracker returns a tracker over assets, none of which have been
// reached yet.
func NewAssetTracker(assets []*Asset) *AssetTracker {
	return &AssetTracker{Assets: assets, history: make(map[uint64]stepSnapshot)}
}

// Observe implements scenario.AssetObserver. It snapshots every live fire's
// exterior front at this step (for later critical-path reconstruction) and
// checks every not-yet-arrived geometry against the current perimeters.
func (at *AssetTracker) Observe(step uint64, t time.Time, fires map[uuid.UUID]*scenario.ScenarioFire) {
	snap := stepSnapshot{time: t, fires: make(map[uuid.UUID]*firegeom.FireFront, len(fires))}
	for id, sf := range fires {
		snap.fires[id] = sf.Exterior
	}
	at.history[step] = snap

	for _, asset := range at.Assets {
		for _, g := range asset.Geometries {
			if g.Arrived {
				continue
			}
			fireID, idx, ok := arrivalPoint(g.Geometry, fires)
			if !ok {
				continue
			}
			front := fires[fireID].Exterior
			g.Arrived = true
			g.ArrivalTime = t
			g.ClosestPoint = *front.At(idx)
			g.closestFireID = fireID
			g.closestStep = step
			g.closestIndex = idx
		}
	}
}

// Satisfied implements scenario.AssetObserver: true once any configured
// asset's own stop-condition arithmetic (all geometries, or N of them) is
// met. Any one tracked asset reaching its criterion is treated as
// sufficient to end the run, since a host that needs every asset satisfied
// simultaneously can express that as a single Asset with Operation -1 over
// every geometry it cares about.
func (at *AssetTracker) Satisfied() bool {
	for _, asset := range at.Assets {
		if asset.satisfied() {
			return true
		}
	}
	return false
}

// arrivalPoint checks every fire's exterior for one that encloses a vertex of
// g; for each such front it takes the front vertex nearest the first enclosed
// geometry vertex, and returns the fire id and vertex index of the candidate
// lying closest to g's vertices. Reports ok=false if no front has reached g
// yet.
func arrivalPoint(g Geometry, fires map[uuid.UUID]*scenario.ScenarioFire) (fireID uuid.UUID, idx int32, ok bool) {
	bestDist2 := math.Inf(1)
	for id, sf := range fires {
		front := sf.Exterior
		reached, candidateIdx := frontReachesGeometry(front, g)
		if !reached {
			continue
		}
		p := front.At(candidateIdx)
		gx, gy := nearestGeometryVertex(g, p.X, p.Y)
		d2 := (p.X-gx)*(p.X-gx) + (p.Y-gy)*(p.Y-gy)
		if d2 < bestDist2 {
			bestDist2 = d2
			fireID, idx, ok = id, candidateIdx, true
		}
	}
	return
}

// frontReachesGeometry reports whether front's perimeter has grown to
// intersect g, approximated as: any vertex of g lies inside front. This
// covers a point asset directly and a line/polygon asset once the fire has
// grown far enough to enclose at least one of its vertices; it is not a
// full polyline/polygon clip (a front that passes entirely between a line
// asset's vertices without enclosing either endpoint is not detected), the
// same kind of approximation perimeter.Merge makes.
func frontReachesGeometry(front *firegeom.FireFront, g Geometry) (bool, int32) {
	for _, v := range g.Vertices {
		if perimeter.Contains(front, v.X, v.Y) {
			_, idx := closestVertex(front, v.X, v.Y)
			return true, idx
		}
	}
	return false, 0
}

func closestVertex(front *firegeom.FireFront, x, y float64) (float64, int32) {
	best, bestIdx := math.Inf(1), int32(-1)
	front.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		d2 := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
		if d2 < best {
			best, bestIdx = d2, idx
		}
		return true
	})
	return best, bestIdx
}

func nearestGeometryVertex(g Geometry, x, y float64) (float64, float64) {
	gx, gy := g.Vertices[0].X, g.Vertices[0].Y
	best := math.Inf(1)
	for _, v := range g.Vertices {
		d2 := (v.X-x)*(v.X-x) + (v.Y-y)*(v.Y-y)
		if d2 < best {
			best, gx, gy = d2, v.X, v.Y
		}
	}
	return gx, gy
}

// PathPoint is one vertex of a reconstructed critical path: a position and
// the wall-clock time the fire front held that position.
type PathPoint struct {
	X, Y float64
	Time time.Time
}

// BuildCriticalPath reconstructs the path the fire took to reach node, by
// walking node's closest point's PrevPoint chain back through retained
// step history to ignition. Direct port of
// AssetGeometryNode<_type>::BuildCriticalPath's backward walk, including
// its neighbor tie-break: when a point has no direct PrevPoint (because it
// was inserted mid-run by PerimeterMaintenance's densify step), look along
// the ring in both directions for the nearest neighbor that does carry
// history; prefer whichever neighbor is still moving if only one is; if
// both/neither are moving, prefer the nearer one; if the two distances are
// equal within criticalPathEpsilon, prefer the one with the higher
// VectorROS (kept from the original's own comment explaining the choice:
// fire fronts that diverge and reconverge tend to have burned the faster
// path sooner).
func (at *AssetTracker) BuildCriticalPath(node *AssetGeometryNode) ([]PathPoint, error) {
	if !node.Arrived {
		return nil, fireerrors.New("asset", fireerrors.KindState, "geometry has not been reached yet")
	}

	snap, ok := at.history[node.closestStep]
	if !ok {
		return nil, fireerrors.New("asset", fireerrors.KindState, "step %d history no longer retained", node.closestStep)
	}
	front, ok := snap.fires[node.closestFireID]
	if !ok {
		return nil, fireerrors.New("asset", fireerrors.KindState, "fire %s has no front at step %d", node.closestFireID, node.closestStep)
	}

	path := []PathPoint{{X: node.ClosestPoint.X, Y: node.ClosestPoint.Y, Time: node.ArrivalTime}}

	idx := node.closestIndex
	fp := front.At(idx)
	if snap.time != node.ArrivalTime {
		path = append([]PathPoint{{X: fp.X, Y: fp.Y, Time: snap.time}}, path...)
	}

	for {
		if fp.PrevPoint == firegeom.NoRef {
			predIdx := findHistoryNeighbor(front, idx, -1)
			succIdx := findHistoryNeighbor(front, idx, +1)
			if predIdx == succIdx {
				if predIdx == idx {
					return path, nil
				}
				idx = predIdx
				fp = front.At(idx)
				if fp.PrevPoint == firegeom.NoRef {
					return path, nil
				}
			} else {
				pfp, sfp := front.At(predIdx), front.At(succIdx)
				pMoving, sMoving := !pfp.Status.Stopped(), !sfp.Status.Stopped()
				switch {
				case pMoving != sMoving:
					if pMoving {
						idx = predIdx
					} else {
						idx = succIdx
					}
				default:
					d1 := dist2(fp, pfp)
					d2 := dist2(fp, sfp)
					if math.Abs(d1-d2) < criticalPathEpsilon {
						if pfp.VectorROS > sfp.VectorROS {
							idx = predIdx
						} else {
							idx = succIdx
						}
					} else if d1 < d2 {
						idx = predIdx
					} else {
						idx = succIdx
					}
				}
				fp = front.At(idx)
			}
		}

		ref := fp.PrevPoint
		prevSnap, ok := at.history[ref.Step]
		if !ok {
			return path, nil
		}
		prevFront, ok := prevSnap.fires[node.closestFireID]
		if !ok {
			return path, nil
		}
		prevFp := prevFront.At(ref.Index)
		path = append([]PathPoint{{X: prevFp.X, Y: prevFp.Y, Time: prevSnap.time}}, path...)

		front, idx, fp = prevFront, ref.Index, prevFp
	}
}

func findHistoryNeighbor(front *firegeom.FireFront, from int32, dir int) int32 {
	idx := from
	for {
		if dir < 0 {
			idx = front.Prev(idx)
		} else {
			idx = front.Next(idx)
		}
		if idx == from {
			return idx
		}
		if front.At(idx).PrevPoint != firegeom.NoRef {
			return idx
		}
	}
}

func dist2(a, b *firegeom.FirePoint) float64 {
	return (a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y)
}
