// Package firegeom provides the geometric primitives the propagation engine
// operates on: FirePoint (one fire-front vertex with its FBP/ellipse stats
// and stop status) and FireFront (an indexable ring of FirePoints), ported
// from firepoint.h/.cpp and the poly.h ring in the original implementation.
package firegeom

import (
	"fmt"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
	"github.com/wise-wildfire/firegrowth/internal/units"
	"gonum.org/v1/gonum/spatial/r2"
)

// FirePoint is one vertex of a FireFront: a position plus the FBP and
// ellipse-derived statistics computed for it during the last propagation
// step, and the history back-references used to reconstruct critical
// paths. All STAT fields are zeroed whenever a new FirePoint is created,
// matching every C++ constructor's behavior.
type FirePoint struct {
	X, Y float64

	// PrevPoint/SuccPoint replace m_prevPoint/m_succPoint: arena-indexed
	// back-references instead of raw pointers, see PointRef.
	PrevPoint PointRef
	SuccPoint PointRef

	// EllipseROS is the per-point spread-rate vector produced by the
	// ellipse model (m_ellipse_ros).
	EllipseROS r2.Vec

	// FBPRAZ is the wind/spread azimuth in compass radians, as produced by
	// the FBP engine (m_fbp_raz). Converted to Cartesian only on retrieval.
	FBPRAZ float64

	Status            StopStatus
	SuccessfulBreach  bool

	// FBP* are the "pure" FBP engine outputs for this point, unmodified.
	FBPRSI  float64
	FBPROSEQ float64
	FBPROS  float64
	FBPBROS float64
	FBPFROS float64

	// Vector* are the ellipse-model-adjusted values for this point's
	// direction of growth, depending on neighbouring point positions too.
	VectorROS float64
	VectorCFB float64
	VectorCFC float64
	VectorSFC float64
	VectorTFC float64
	VectorFI  float64

	FBPFI        float64
	FBPCFB       float64
	FBPROSRatio  float64
	FlameLength  float64
}

// NewFirePoint returns a FirePoint at (x, y) with no history links and
// every stat at its zero value, matching FirePoint(const XYPointType&).
func NewFirePoint(x, y float64) FirePoint {
	return FirePoint{X: x, Y: y, PrevPoint: NoRef, SuccPoint: NoRef}
}

// CopyAsHistory returns a new FirePoint that records fp as its PrevPoint,
// copies position and status from fp, and defaults FBPROSRatio to 1.0 if fp
// is stopped — the behavior of the copy constructor FirePoint(const
// FirePoint&), which intentionally does not copy every stat field.
func (fp FirePoint) CopyAsHistory(prevStep uint64, prevIndex int32) FirePoint {
	next := FirePoint{
		X:         fp.X,
		Y:         fp.Y,
		PrevPoint: PointRef{Step: prevStep, Index: prevIndex},
		SuccPoint: NoRef,
		Status:    fp.Status,
	}
	if fp.Status.Stopped() {
		next.FBPROSRatio = 1.0
	}
	return next
}

// CopyValuesFrom overwrites every field of fp with src's values except the
// history links, which are cleared — the behavior of copyValuesFrom in the
// original implementation ("like a copy operator but don't want to
// override that operator over possible other issues").
func (fp *FirePoint) CopyValuesFrom(src FirePoint) {
	*fp = src
	fp.PrevPoint = NoRef
	fp.SuccPoint = NoRef
}

// CanMove reports whether this point is eligible to keep propagating: it
// must not be stopped, and if its ellipse ROS vector has a zero x with a
// non-zero y it is also considered unable to move (mirrors the original's
// admittedly asymmetric CanMove check on m_ellipse_ros).
func (fp FirePoint) CanMove() bool {
	if fp.Status.Stopped() {
		return false
	}
	if fp.EllipseROS.X == 0.0 && fp.EllipseROS.Y != 0.0 {
		return false
	}
	return true
}

// RetrieveStat returns the raw (native-unit, uncoverted) value of the
// requested statistic. A stopped point reports 0 for every stat, including
// StatActive and StatRAZ, per RetrieveStat's `else` branch. A running point
// reports StatActive as 1.0 and converts RAZ from its stored compass
// convention to Cartesian radians on the way out.
func (fp FirePoint) RetrieveStat(stat StatID) (float64, error) {
	if fp.Status.Stopped() {
		switch stat {
		case StatActive, StatFBPRSI, StatFBPROSEQ, StatFBPROS, StatFBPBROS, StatFBPFROS,
			StatRAZ, StatROS, StatCFB, StatHCFB, StatCFC, StatSFC, StatTFC, StatFI, StatHFI,
			StatFlameLength:
			return 0.0, nil
		default:
			return 0, fireerrors.New("firegeom", fireerrors.KindValidation, "unknown stat id %d", stat)
		}
	}
	switch stat {
	case StatFBPRSI:
		return fp.FBPRSI, nil
	case StatFBPROSEQ:
		return fp.FBPROSEQ, nil
	case StatFBPROS:
		return fp.FBPROS, nil
	case StatFBPBROS:
		return fp.FBPBROS, nil
	case StatFBPFROS:
		return fp.FBPFROS, nil
	case StatRAZ:
		return CompassToCartesianRadian(fp.FBPRAZ), nil
	case StatROS:
		return fp.VectorROS, nil
	case StatCFB:
		return fp.VectorCFB, nil
	case StatHCFB:
		return fp.FBPCFB, nil
	case StatCFC:
		return fp.VectorCFC, nil
	case StatSFC:
		return fp.VectorSFC, nil
	case StatTFC:
		return fp.VectorTFC, nil
	case StatFI:
		return fp.VectorFI, nil
	case StatHFI:
		return fp.FBPFI, nil
	case StatFlameLength:
		return fp.FlameLength, nil
	case StatActive:
		return 1.0, nil
	default:
		return 0, fireerrors.New("firegeom", fireerrors.KindValidation, "unknown stat id %d", stat)
	}
}

// statClass maps a StatID to the units.StatClass used to convert it.
func statClass(stat StatID) units.StatClass {
	switch stat {
	case StatFBPRSI, StatFBPROSEQ, StatFBPROS, StatFBPBROS, StatFBPFROS, StatROS:
		return units.ClassROS
	case StatFI, StatHFI:
		return units.ClassIntensity
	case StatTFC, StatSFC, StatCFC:
		return units.ClassConsumption
	case StatFlameLength:
		return units.ClassLength
	default:
		return units.ClassUnitless
	}
}

// RetrieveAttribute returns the requested statistic converted to unitCode,
// matching retrieve_attribute(stat, units)'s pass-through for unitCode == 0
// and for inherently unitless stats (ACTIVE, CFB, HCFB, RAZ).
func (fp FirePoint) RetrieveAttribute(stat StatID, unitCode int) (float64, error) {
	raw, err := fp.RetrieveStat(stat)
	if err != nil {
		return 0, err
	}
	if unitCode == units.UnitNative {
		return raw, nil
	}
	return units.Convert(statClass(stat), raw, unitCode)
}

func (fp FirePoint) String() string {
	return fmt.Sprintf("FirePoint(%.3f, %.3f, status=%s)", fp.X, fp.Y, fp.Status)
}
