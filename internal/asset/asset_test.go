package asset

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/wise-wildfire/firegrowth/internal/propagate"
	"github.com/wise-wildfire/firegrowth/internal/scenario"
)

type uniformEngine struct{ fuelType string }

func (e uniformEngine) Sample(x, y float64, t time.Time) (grid.Sample, error) {
	return grid.Sample{FuelType: e.fuelType}, nil
}
func (e uniformEngine) Attributes() (grid.Attributes, error) { return grid.Attributes{}, nil }

type uniformFuel struct{ ros float64 }

func (f uniformFuel) Evaluate(in grid.FuelInputs) (grid.FBPOutputs, error) {
	return grid.FBPOutputs{RSI: f.ros, ROSEq: f.ros, ROS: f.ros, BROS: f.ros, FROS: f.ros}, nil
}
func (f uniformFuel) FlameLength(treeHeight, cfb, fi float64) float64 { return 0 }

func square(half float64) *firegeom.FireFront {
	return firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(-half, -half),
		firegeom.NewFirePoint(half, -half),
		firegeom.NewFirePoint(half, half),
		firegeom.NewFirePoint(-half, half),
	})
}

func pointAsset(x, y float64) *Asset {
	return &Asset{
		Name:      "test-point",
		Operation: -1,
		Geometries: []*AssetGeometryNode{
			{Geometry: Geometry{Kind: GeometryPoint, Vertices: []struct{ X, Y float64 }{{X: x, Y: y}}}},
		},
	}
}

func TestObserve_MarksArrivalWhenFrontEnclosesPoint(t *testing.T) {
	t.Parallel()

	tracker := NewAssetTracker([]*Asset{pointAsset(1, 1)})
	fire := scenario.NewActiveFire(time.Unix(0, 0))
	sf := scenario.NewScenarioFire(fire, square(5))
	fires := map[uuid.UUID]*scenario.ScenarioFire{fire.ID: sf}

	tracker.Observe(0, time.Unix(100, 0), fires)

	g := tracker.Assets[0].Geometries[0]
	assert.True(t, g.Arrived)
	assert.Equal(t, time.Unix(100, 0), g.ArrivalTime)
}

func TestObserve_NoArrivalWhenFrontDoesNotEnclosePoint(t *testing.T) {
	t.Parallel()

	tracker := NewAssetTracker([]*Asset{pointAsset(100, 100)})
	fire := scenario.NewActiveFire(time.Unix(0, 0))
	sf := scenario.NewScenarioFire(fire, square(5))
	fires := map[uuid.UUID]*scenario.ScenarioFire{fire.ID: sf}

	tracker.Observe(0, time.Unix(100, 0), fires)

	assert.False(t, tracker.Assets[0].Geometries[0].Arrived)
}

func TestSatisfied_AllGeometriesRequired(t *testing.T) {
	t.Parallel()

	a := &Asset{
		Operation: -1,
		Geometries: []*AssetGeometryNode{
			{Arrived: true},
			{Arrived: false},
		},
	}
	tracker := &AssetTracker{Assets: []*Asset{a}}
	assert.False(t, tracker.Satisfied())

	a.Geometries[1].Arrived = true
	assert.True(t, tracker.Satisfied())
}

func TestSatisfied_CountThreshold(t *testing.T) {
	t.Parallel()

	a := &Asset{
		Operation: 2,
		Geometries: []*AssetGeometryNode{
			{Arrived: true},
			{Arrived: false},
			{Arrived: false},
		},
	}
	tracker := &AssetTracker{Assets: []*Asset{a}}
	assert.False(t, tracker.Satisfied())

	a.Geometries[1].Arrived = true
	assert.True(t, tracker.Satisfied())
}

func TestBuildCriticalPath_WalksBackToIgnition(t *testing.T) {
	t.Parallel()

	tracker := NewAssetTracker(nil)
	fireID := uuid.New()

	// Step 0: ignition ring, no history.
	step0 := square(1)
	tracker.history[0] = stepSnapshot{
		time:  time.Unix(0, 0),
		fires: map[uuid.UUID]*firegeom.FireFront{fireID: step0},
	}

	// Step 1: every point's PrevPoint links back to step0's matching index.
	step1Pts := make([]firegeom.FirePoint, 4)
	for i := 0; i < 4; i++ {
		p := step0.At(int32(i))
		step1Pts[i] = firegeom.NewFirePoint(p.X*2, p.Y*2)
		step1Pts[i].PrevPoint = firegeom.PointRef{Step: 0, Index: int32(i)}
	}
	step1 := firegeom.NewFireFront(step1Pts)
	tracker.history[1] = stepSnapshot{
		time:  time.Unix(60, 0),
		fires: map[uuid.UUID]*firegeom.FireFront{fireID: step1},
	}

	node := &AssetGeometryNode{
		Arrived:       true,
		ArrivalTime:   time.Unix(60, 0),
		ClosestPoint:  *step1.At(0),
		closestFireID: fireID,
		closestStep:   1,
		closestIndex:  0,
	}

	path, err := tracker.BuildCriticalPath(node)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, time.Unix(0, 0), path[0].Time)
	assert.Equal(t, time.Unix(60, 0), path[1].Time)
	assert.InDelta(t, step0.At(0).X, path[0].X, 1e-9)
}

func TestBuildCriticalPath_RejectsUnarrivedNode(t *testing.T) {
	t.Parallel()

	tracker := NewAssetTracker(nil)
	_, err := tracker.BuildCriticalPath(&AssetGeometryNode{Arrived: false})
	assert.Error(t, err)
}

// TestAssetTracker_WiredIntoScenario_ObservesAndReconstructs exercises
// AssetTracker through a real multi-step scenario.Scenario.Advance run
// (rather than a hand-built history map), so that propagateAll's per-step
// front replacement is what feeds the history this test walks.
func TestAssetTracker_WiredIntoScenario_ObservesAndReconstructs(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	end := start.Add(2 * time.Hour)
	numeric := fireconfig.DefaultNumeric()
	startSec, endSec := start.Unix(), end.Unix()
	numeric.StartTimeUnixSeconds = &startSec
	numeric.EndTimeUnixSeconds = &endSec
	display := 600.0
	numeric.DisplayIntervalSeconds = &display
	size := 5.0
	numeric.IgnitionSize = &size

	cfg := fireconfig.Scenario{
		Flags:   fireconfig.DefaultFlags(),
		Numeric: numeric,
		Ignitions: []fireconfig.Ignition{
			{GeometryWKT: "POINT (0 0)", AtUnixSeconds: start.Unix()},
		},
	}
	prop := propagate.New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 5.0}, propagate.Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 1000,
	})

	s, err := scenario.New(cfg, prop, nil)
	require.NoError(t, err)

	tracker := NewAssetTracker([]*Asset{pointAsset(50, 0)})
	s.Assets = tracker

	var node *AssetGeometryNode
	for i := 0; i < 50; i++ {
		outcome, err := s.Advance(context.Background())
		require.NoError(t, err)
		if tracker.Assets[0].Geometries[0].Arrived {
			node = tracker.Assets[0].Geometries[0]
			break
		}
		if outcome != scenario.Running {
			break
		}
	}
	require.NotNil(t, node, "asset was never reached within the step budget")

	path, err := tracker.BuildCriticalPath(node)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.True(t, path[0].Time.Before(node.ArrivalTime) || path[0].Time.Equal(node.ArrivalTime))
	assert.Equal(t, node.ArrivalTime, path[len(path)-1].Time)
}
