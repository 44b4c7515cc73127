// Package propagate advances a FireFront's vertices by one sub-step: for
// each live point, it samples the landscape, builds the point's ellipse,
// computes the Huygens-style offset along the local outward normal, and
// applies the stop-condition checks in priority order (spec.md §4.6).
//
// Shape grounded on internal/lidar/pipeline/tracking_pipeline.go's staged
// frame callback: numbered stages, each guarded, each emitting leveled
// trace diagnostics via internal/monitoring.
package propagate

import (
	"context"
	"math"
	"time"

	"github.com/wise-wildfire/firegrowth/internal/ellipse"
	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/wise-wildfire/firegrowth/internal/monitoring"
	"gonum.org/v1/gonum/spatial/r2"
)

// Breaker gates a proposed post-step position against configured vector
// firebreaks (the external VectorEngine collaborator, spec.md §6.1).
type Breaker interface {
	// Breach reports whether the segment from -> to crosses a firebreak
	// that the fire has not satisfied the breach criterion for, and if so,
	// the point along the segment where it should be halted.
	Breach(from, to r2.Vec) (blocked bool, haltAt r2.Vec, ok bool)
}

// FireInterior reports whether a point lies inside another fire's
// perimeter, used for the fire_break stop condition.
type FireInterior interface {
	Contains(p r2.Vec, excludeFireID string) bool
}

// Options bundles the per-scenario knobs the Propagator needs: feature
// flags, numeric tuning, and the external collaborators.
type Options struct {
	Wind                bool
	Topography          bool
	Use2DGrowth         bool
	MinimumSpreadingROS float64
	SpatialThreshold    float64
	Breaker             Breaker
	Interiors           FireInterior
	PercentileScaler    func(fuelClassGUID string) float64
}

// Propagator advances FirePoints against a grid.Engine/grid.FuelModel pair.
type Propagator struct {
	Grid    grid.Engine
	Fuel    grid.FuelModel
	Options Options
}

// New returns a Propagator over the given collaborators.
func New(g grid.Engine, fuel grid.FuelModel, opts Options) *Propagator {
	return &Propagator{Grid: g, Fuel: fuel, Options: opts}
}

// StepVertex computes point's new position and stats after sub-step dt,
// given its neighbors pred and succ (for the local tangent/normal) at time
// t. It does not mutate front; the caller splices the result in as a new
// FirePoint carrying a PrevPoint back-reference to point's arena slot.
func (p *Propagator) StepVertex(ctx context.Context, fireID, excludeFireID string, point, pred, succ firegeom.FirePoint, dt time.Duration, t time.Time) (firegeom.FirePoint, error) {
	if err := ctx.Err(); err != nil {
		return point, err
	}
	if !point.CanMove() {
		monitoring.Logf("propagate: vertex already stopped, skipping (fire=%s)", fireID)
		return point, nil
	}

	sample, err := p.Grid.Sample(point.X, point.Y, t)
	if err != nil {
		return point, fireerrors.Wrap("propagate", fireerrors.KindPropagation, err)
	}

	fbp, err := p.Fuel.Evaluate(grid.FuelInputs{
		FuelType: sample.FuelType,
		Weather:  sample.Weather,
		Slope:    sample.Slope,
		Aspect:   sample.Aspect,
	})
	if err != nil {
		return point, fireerrors.Wrap("propagate", fireerrors.KindPropagation, err)
	}

	scaler := 1.0
	if p.Options.PercentileScaler != nil {
		scaler = p.Options.PercentileScaler(sample.FuelType)
	}

	model := ellipse.Build(ellipse.Inputs{
		ROSeq:      fbp.ROSEq,
		ROS:        fbp.ROS,
		BROS:       fbp.BROS,
		FROS:       fbp.FROS,
		RAZCompass: fbp.RAZ,
	}, p.Options.Wind, p.Options.Topography, scaler)

	normalAzimuth := outwardNormalAzimuth(pred, point, succ, p.Options.Use2DGrowth, sample.Slope, sample.Aspect)
	growth := model.Vector(normalAzimuth)

	next := point
	next.FBPRSI = fbp.RSI
	next.FBPROSEQ = fbp.ROSEq
	next.FBPROS = fbp.ROS
	next.FBPBROS = fbp.BROS
	next.FBPFROS = fbp.FROS
	next.FBPRAZ = fbp.RAZ
	next.FBPFI = fbp.FI
	next.FBPCFB = fbp.CFB
	next.VectorCFB = fbp.CFB
	next.VectorCFC = fbp.CFC
	next.VectorSFC = fbp.SFC
	next.VectorTFC = fbp.TFC
	next.VectorFI = fbp.FI
	next.EllipseROS = growth
	next.VectorROS = r2.Norm(growth)
	next.FlameLength = p.Fuel.FlameLength(0, fbp.CFB, fbp.FI)

	dtMinutes := dt.Minutes()
	displacement := r2.Scale(dtMinutes, growth)
	proposed := r2.Vec{X: point.X + displacement.X, Y: point.Y + displacement.Y}

	if err := checkBudget(displacement, p.Options.SpatialThreshold); err != nil {
		return point, err
	}

	next.Status, next.X, next.Y = p.checkStops(proposed, r2.Vec{X: point.X, Y: point.Y}, fireID, excludeFireID, sample, next.VectorROS)
	return next, nil
}

// checkStops applies the four stop-condition checks in the exact priority
// order of spec.md §4.6: breach, no-fuel, below-minimum-ROS, fire-interior.
func (p *Propagator) checkStops(proposed, from r2.Vec, fireID, excludeFireID string, sample grid.Sample, vectorROS float64) (firegeom.StopStatus, float64, float64) {
	if p.Options.Breaker != nil {
		if blocked, haltAt, ok := p.Options.Breaker.Breach(from, proposed); ok && blocked {
			return firegeom.StatusVector, haltAt.X, haltAt.Y
		}
	}
	if sample.FuelType == "" {
		return firegeom.StatusNoFuel, from.X, from.Y
	}
	if vectorROS < p.Options.MinimumSpreadingROS {
		return firegeom.StatusNoROS, from.X, from.Y
	}
	if p.Options.Interiors != nil && p.Options.Interiors.Contains(proposed, excludeFireID) {
		return firegeom.StatusFire, proposed.X, proposed.Y
	}
	return firegeom.StatusNormal, proposed.X, proposed.Y
}

func checkBudget(displacement r2.Vec, spatialThreshold float64) error {
	if spatialThreshold <= 0 {
		return nil
	}
	if r2.Norm(displacement) > spatialThreshold*1.0001 {
		return fireerrors.New("propagate", fireerrors.KindPropagation,
			"sub-step displacement %.3f exceeds spatial threshold %.3f", r2.Norm(displacement), spatialThreshold)
	}
	return nil
}

// outwardNormalAzimuth returns the Cartesian-radian azimuth of the local
// outward normal at point, derived from pred->succ. 3-D mode (use2D false)
// returns the same azimuth as 2-D mode: slopeDeg and aspectDeg are not used,
// and the normal is not computed in the terrain-tangent plane.
func outwardNormalAzimuth(pred, point, succ firegeom.FirePoint, use2D bool, slopeDeg, aspectDeg float64) float64 {
	tangent := r2.Vec{X: succ.X - pred.X, Y: succ.Y - pred.Y}
	// Outward normal: rotate the tangent -90 degrees (clockwise), which
	// points away from the ring interior for a counter-clockwise-wound
	// front.
	normal := r2.Vec{X: tangent.Y, Y: -tangent.X}
	azimuth := math.Atan2(normal.Y, normal.X)
	if use2D {
		return azimuth
	}
	// 3-D mode: no terrain projection is applied, so the bearing is the
	// 2-D one. Slope and aspect reach the spread rate only through the
	// FuelModel evaluation upstream.
	return azimuth
}
