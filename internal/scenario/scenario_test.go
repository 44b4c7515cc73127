package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/wise-wildfire/firegrowth/internal/propagate"
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

func TestScenarioFire_AreaAndAllStopped(t *testing.T) {
	t.Parallel()

	fire := NewActiveFire(time.Unix(0, 0))
	sf := NewScenarioFire(fire, square(10))

	assert.InDelta(t, 400.0, sf.Area(), 1e-6)
	assert.False(t, sf.AllStopped())

	sf.Exterior.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		p.Status = firegeom.StatusNoFuel
		return true
	})
	assert.True(t, sf.AllStopped())
}

func TestScheduler_NextStep_ClampsToDisplayInterval(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	end := start.Add(10 * time.Hour)
	display := 3600.0
	numeric := fireconfig.DefaultNumeric()
	numeric.DisplayIntervalSeconds = &display

	sched := NewScheduler(numeric, nil, start, end)
	dt, tNew := sched.NextStep(start, false)

	assert.Equal(t, time.Hour, dt)
	assert.Equal(t, start.Add(time.Hour), tNew)
}

func TestScheduler_NextStep_ClampsToEndTime(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	end := start.Add(30 * time.Minute)
	display := 3600.0
	numeric := fireconfig.DefaultNumeric()
	numeric.DisplayIntervalSeconds = &display

	sched := NewScheduler(numeric, nil, start, end)
	_, tNew := sched.NextStep(start, false)

	assert.Equal(t, end, tNew)
}

func TestScheduler_CheckTermination(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	end := start.Add(time.Hour)
	sched := NewScheduler(fireconfig.DefaultNumeric(), nil, start, end)

	assert.Equal(t, Running, sched.CheckTermination(start.Add(30*time.Minute), false, false))
	assert.Equal(t, CompleteEndTime, sched.CheckTermination(end, false, false))
	assert.Equal(t, CompleteExtents, sched.CheckTermination(start.Add(10*time.Minute), true, true))
}

func TestStopConditions_AreaThreshold(t *testing.T) {
	t.Parallel()

	sc := &StopConditions{AreaThreshold: 100}
	assert.Equal(t, "", sc.Evaluate(StepStats{Area: 50}))
	assert.Equal(t, "area_threshold", sc.Evaluate(StepStats{Area: 150}))
}

func TestStopConditions_GrowthRateConsecutiveSteps(t *testing.T) {
	t.Parallel()

	sc := &StopConditions{GrowthRateThreshold: 1.0, GrowthRateConsecutive: 2}
	assert.Equal(t, "", sc.Evaluate(StepStats{PerimeterLength: 0, ElapsedSeconds: 0}))
	assert.Equal(t, "", sc.Evaluate(StepStats{PerimeterLength: 0.1, ElapsedSeconds: 10}))
	assert.Equal(t, "growth_rate_below_threshold", sc.Evaluate(StepStats{PerimeterLength: 0.2, ElapsedSeconds: 20}))
}

func TestStopConditions_ResponseWindow(t *testing.T) {
	t.Parallel()

	sc := &StopConditions{ResponseWindowSeconds: 100}
	assert.Equal(t, "", sc.Evaluate(StepStats{ElapsedSeconds: 50}))
	assert.Equal(t, "response_window_elapsed", sc.Evaluate(StepStats{ElapsedSeconds: 150}))
}

func newTestScenario(t *testing.T) *Scenario {
	t.Helper()

	start := time.Unix(0, 0).UTC()
	end := start.Add(2 * time.Hour)
	numeric := fireconfig.DefaultNumeric()
	startSec := start.Unix()
	endSec := end.Unix()
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

	prop := propagate.New(uniformEngine{fuelType: "C2"}, uniformFuel{ros: 1.0}, propagate.Options{
		Wind: true, Topography: true, Use2DGrowth: true, SpatialThreshold: 1000,
	})

	s, err := New(cfg, prop, nil)
	require.NoError(t, err)
	return s
}

func TestScenario_New_SeedsDiskFront(t *testing.T) {
	t.Parallel()

	s := newTestScenario(t)
	require.Len(t, s.Fires, 1)
	for _, sf := range s.Fires {
		assert.Greater(t, sf.Exterior.VertexCount(), 2)
		assert.Greater(t, sf.Area(), 0.0)
	}
}

func TestScenario_Advance_GrowsAreaAndStepsAdvance(t *testing.T) {
	t.Parallel()

	s := newTestScenario(t)

	var lastArea float64
	for i := 0; i < 3; i++ {
		outcome, err := s.Advance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Running, outcome)
		assert.Equal(t, uint64(i+1), s.CurrentStep)

		var area float64
		for _, sf := range s.Fires {
			area += sf.Area()
		}
		assert.Greater(t, area, lastArea)
		lastArea = area
	}
}

func TestScenario_Advance_CompletesAtEndTime(t *testing.T) {
	t.Parallel()

	s := newTestScenario(t)
	var outcome Outcome
	var err error
	for i := 0; i < 50; i++ {
		outcome, err = s.Advance(context.Background())
		require.NoError(t, err)
		if outcome != Running {
			break
		}
	}
	assert.Equal(t, CompleteEndTime, outcome)
}
