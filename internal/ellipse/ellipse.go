// Package ellipse implements the per-vertex elliptical growth model: given
// the FBP engine's RSI/ROSeq/ROS/BROS/FROS/RAZ outputs for one FirePoint,
// it produces a growth-rate function of bearing that the Propagator samples
// at whatever azimuth a sub-step's local outward normal points along.
//
// There is no surviving reference implementation of the ellipse module in
// the corpus this engine was ported from — firepoint.cpp and
// ScenarioAsset.cpp cover FirePoint and AssetTracker, but the ellipse
// construction itself was not retrieved. The formulation here is the
// standard single-focus conic ellipse (ignition at the rear focus, head
// direction at the near apex) used throughout fire-growth literature,
// with an independent FROS input reconciled against the conic's
// theoretical flank rate via a sin^2 blend so all three measured rates
// (ROS, BROS, FROS) are reproduced exactly at their respective bearings.
package ellipse

import (
	"math"

	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Inputs bundles one vertex's FBP outputs needed to build its ellipse.
type Inputs struct {
	ROSeq float64
	ROS   float64
	BROS  float64
	FROS  float64
	// RAZCompass is the head-fire direction, compass radians.
	RAZCompass float64
}

// Model is the built ellipse for one vertex: queryable for the growth rate
// at any bearing via RateAt/Vector.
type Model struct {
	a, c, e      float64
	correction   float64
	razCartesian float64
}

// Build constructs the ellipse for one vertex. When wind is false, the WSV
// (wind speed vector) component of the FBP inputs is clamped to zero by
// collapsing ROS/BROS/FROS toward ROSeq; when topography is false, the
// slope-derived component is similarly collapsed. percentileScaler (4.14)
// multiplies RSI-derived rates before construction; pass 1 when growth
// percentile scaling is disabled.
func Build(in Inputs, wind, topography bool, percentileScaler float64) Model {
	ros, bros, fros := in.ROS, in.BROS, in.FROS

	anisotropy := 1.0
	switch {
	case !wind && !topography:
		anisotropy = 0.0
	case !wind || !topography:
		anisotropy = 0.5
	}
	if anisotropy != 1.0 {
		ros = in.ROSeq + (ros-in.ROSeq)*anisotropy
		bros = in.ROSeq + (bros-in.ROSeq)*anisotropy
		fros = in.ROSeq + (fros-in.ROSeq)*anisotropy
	}

	ros *= percentileScaler
	bros *= percentileScaler
	fros *= percentileScaler

	a := (ros + bros) / 2
	c := (ros - bros) / 2
	e := 0.0
	if a > 0 {
		e = c / a
	}

	theoreticalFlank := a * (1 - e*e)
	correction := 1.0
	if theoreticalFlank > 1e-9 {
		correction = fros / theoreticalFlank
	}

	return Model{
		a: a, c: c, e: e,
		correction:   correction,
		razCartesian: firegeom.CompassToCartesianRadian(in.RAZCompass),
	}
}

// RateAt returns the instantaneous rate of spread at the given bearing,
// azimuthCartesian, in Cartesian radians.
func (m Model) RateAt(azimuthCartesian float64) float64 {
	nu := azimuthCartesian - m.razCartesian
	denom := 1 - m.e*math.Cos(nu)
	if denom < 1e-9 {
		denom = 1e-9
	}
	base := m.a * (1 - m.e*m.e) / denom
	s := math.Sin(nu)
	blend := 1 + (m.correction-1)*s*s
	return base * blend
}

// Vector returns the growth-rate vector at the given bearing: direction
// azimuthCartesian, magnitude RateAt(azimuthCartesian).
func (m Model) Vector(azimuthCartesian float64) r2.Vec {
	rate := m.RateAt(azimuthCartesian)
	return r2.Vec{X: rate * math.Cos(azimuthCartesian), Y: rate * math.Sin(azimuthCartesian)}
}

// HeadRate returns the rate of spread along the head-fire direction (RAZ).
func (m Model) HeadRate() float64 { return m.a + m.c }

// BackRate returns the rate of spread along the back direction.
func (m Model) BackRate() float64 { return m.a - m.c }
