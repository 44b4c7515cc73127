package propagate

import (
	"context"
	"testing"
	"time"

	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type uniformEngine struct {
	fuelType string
}

func (e uniformEngine) Sample(x, y float64, t time.Time) (grid.Sample, error) {
	return grid.Sample{FuelType: e.fuelType}, nil
}
func (e uniformEngine) Attributes() (grid.Attributes, error) { return grid.Attributes{}, nil }

type uniformFuel struct {
	ros float64
}

func (f uniformFuel) Evaluate(in grid.FuelInputs) (grid.FBPOutputs, error) {
	return grid.FBPOutputs{RSI: f.ros, ROSEq: f.ros, ROS: f.ros, BROS: f.ros, FROS: f.ros}, nil
}
func (f uniformFuel) FlameLength(treeHeight, cfb, fi float64) float64 { return 0 }

func TestStepVertex_NormalGrowth(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 1.0}, Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 100,
	})

	pred := firegeom.NewFirePoint(-1, 0)
	point := firegeom.NewFirePoint(0, 0)
	succ := firegeom.NewFirePoint(1, 0)

	next, err := p.StepVertex(context.Background(), "fire-1", "", point, pred, succ, time.Minute, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, firegeom.StatusNormal, next.Status)
	assert.InDelta(t, 1.0, next.VectorROS, 1e-6)
}

func TestStepVertex_NoFuelStops(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: ""}, uniformFuel{ros: 1.0}, Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 100,
	})

	pred := firegeom.NewFirePoint(-1, 0)
	point := firegeom.NewFirePoint(0, 0)
	succ := firegeom.NewFirePoint(1, 0)

	next, err := p.StepVertex(context.Background(), "fire-1", "", point, pred, succ, time.Minute, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, firegeom.StatusNoFuel, next.Status)
	assert.Equal(t, point.X, next.X)
	assert.Equal(t, point.Y, next.Y)
}

func TestStepVertex_BelowMinimumROS(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 0.01}, Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 100, MinimumSpreadingROS: 1.0,
	})

	pred := firegeom.NewFirePoint(-1, 0)
	point := firegeom.NewFirePoint(0, 0)
	succ := firegeom.NewFirePoint(1, 0)

	next, err := p.StepVertex(context.Background(), "fire-1", "", point, pred, succ, time.Minute, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, firegeom.StatusNoROS, next.Status)
}

type alwaysInside struct{}

func (alwaysInside) Contains(p r2.Vec, excludeFireID string) bool { return true }

func TestStepVertex_FireInteriorStops(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 1.0}, Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 100, Interiors: alwaysInside{},
	})

	pred := firegeom.NewFirePoint(-1, 0)
	point := firegeom.NewFirePoint(0, 0)
	succ := firegeom.NewFirePoint(1, 0)

	next, err := p.StepVertex(context.Background(), "fire-1", "fire-2", point, pred, succ, time.Minute, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, firegeom.StatusFire, next.Status)
}

func TestStepVertex_AlreadyStoppedDoesNotMove(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 1.0}, Options{SpatialThreshold: 100})

	point := firegeom.NewFirePoint(0, 0)
	point.Status = firegeom.StatusNoFuel
	pred := firegeom.NewFirePoint(-1, 0)
	succ := firegeom.NewFirePoint(1, 0)

	next, err := p.StepVertex(context.Background(), "fire-1", "", point, pred, succ, time.Minute, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, point, next)
}

func TestStepVertex_SpatialThresholdExceeded(t *testing.T) {
	t.Parallel()

	p := New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 1000.0}, Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 1.0,
	})

	pred := firegeom.NewFirePoint(-1, 0)
	point := firegeom.NewFirePoint(0, 0)
	succ := firegeom.NewFirePoint(1, 0)

	_, err := p.StepVertex(context.Background(), "fire-1", "", point, pred, succ, time.Minute, time.Unix(0, 0))
	assert.Error(t, err)
}
