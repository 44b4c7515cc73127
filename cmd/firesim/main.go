// Command firesim is a flag-driven harness that drives a scenario.Scenario
// to completion against a uniform mock Grid/Fuel pair, the way a host
// integration would wire its own GIS/weather backend and FBP fuel model in.
// Grounded on cmd/lidar's flag-parsing, signal.NotifyContext, and structured
// shutdown shape; CSV summary output follows cmd/sweep's per-row writer
// pattern.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/wise-wildfire/firegrowth/internal/asset"
	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/wise-wildfire/firegrowth/internal/propagate"
	"github.com/wise-wildfire/firegrowth/internal/scenario"
	"github.com/wise-wildfire/firegrowth/internal/storage"
)

// uniformEngine and uniformFuel stand in for the GIS/weather backend and FBP
// fuel model a real host supplies; a flat fuel type and rate-of-spread
// everywhere on the plane, matching scenario_test.go's harness fixtures.
type uniformEngine struct {
	fuelType string
	slope    float64
	aspect   float64
}

func (e uniformEngine) Sample(x, y float64, t time.Time) (grid.Sample, error) {
	return grid.Sample{FuelType: e.fuelType, Slope: e.slope, Aspect: e.aspect}, nil
}

func (e uniformEngine) Attributes() (grid.Attributes, error) {
	return grid.Attributes{PlotResolutionM: 1.0}, nil
}

type uniformFuel struct{ ros float64 }

func (f uniformFuel) Evaluate(in grid.FuelInputs) (grid.FBPOutputs, error) {
	return grid.FBPOutputs{RSI: f.ros, ROSEq: f.ros, ROS: f.ros, BROS: f.ros * 0.2, FROS: f.ros * 0.1}, nil
}

func (f uniformFuel) FlameLength(treeHeight, cfb, fi float64) float64 {
	return 0.0775 * (fi * fi / (treeHeight + 1))
}

// assetFlag accumulates repeated -asset name:x,y flags into point assets.
type assetFlag struct{ assets []*asset.Asset }

func (a *assetFlag) String() string {
	var parts []string
	for _, as := range a.assets {
		parts = append(parts, as.Name)
	}
	return strings.Join(parts, ",")
}

func (a *assetFlag) Set(v string) error {
	name, coords, ok := strings.Cut(v, ":")
	if !ok {
		return fmt.Errorf("asset %q: expected name:x,y", v)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return fmt.Errorf("asset %q: expected name:x,y", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fmt.Errorf("asset %q: %w", v, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fmt.Errorf("asset %q: %w", v, err)
	}
	a.assets = append(a.assets, &asset.Asset{
		Name:      name,
		Operation: -1,
		Geometries: []*asset.AssetGeometryNode{
			{Geometry: asset.Geometry{Kind: asset.GeometryPoint, Vertices: []struct{ X, Y float64 }{{X: x, Y: y}}}},
		},
	})
	return nil
}

func main() {
	ignitionWKT := flag.String("ignition", "POINT (0 0)", "ignition geometry, WKT point")
	ignitionSize := flag.Float64("ignition-size", 5.0, "ignition radius, metres")
	start := flag.Int64("start", 0, "scenario START_TIME, unix seconds")
	end := flag.Int64("end", 3600*6, "scenario END_TIME, unix seconds")
	displayInterval := flag.Float64("display-interval", 600.0, "DISPLAY_INTERVAL, seconds")
	spatialThreshold := flag.Float64("spatial-threshold", 1.0, "SPATIAL_THRESHOLD, metres")
	perimeterResolution := flag.Float64("perimeter-resolution", 1.0, "PERIMETER_RESOLUTION, metres")
	perimeterSpacing := flag.Float64("perimeter-spacing", 0.2, "PERIMETER_SPACING, metres")
	wind := flag.Bool("wind", true, "couple ellipse orientation to wind")
	topography := flag.Bool("topography", false, "couple ellipse orientation to slope/aspect")
	use2D := flag.Bool("use2d", true, "2-D sub-stepping instead of 3-D")
	boundaryStop := flag.Bool("boundary-stop", false, "terminate on reaching grid extents")
	fuelType := flag.String("fuel-type", "C2", "uniform fuel type sampled everywhere")
	ros := flag.Float64("ros", 5.0, "uniform rate of spread, m/min")
	maxSteps := flag.Int("max-steps", 10000, "safety cap on ScenarioTimeStep count")

	scenarioID := flag.String("scenario-id", "firesim", "scenario id used to key checkpoint/critical-path rows")
	dbPath := flag.String("db", "", "sqlite checkpoint database path (empty disables persistence)")
	csvPath := flag.String("csv", "", "per-step summary CSV path (empty disables CSV output)")

	var assets assetFlag
	flag.Var(&assets, "asset", "repeatable: name:x,y point asset to track arrival against")

	flag.Parse()

	startSec, endSec, display := *start, *end, *displayInterval
	size := *ignitionSize
	numeric := fireconfig.DefaultNumeric()
	numeric.StartTimeUnixSeconds = &startSec
	numeric.EndTimeUnixSeconds = &endSec
	numeric.DisplayIntervalSeconds = &display
	numeric.SpatialThreshold = spatialThreshold
	numeric.PerimeterResolution = perimeterResolution
	numeric.PerimeterSpacing = perimeterSpacing
	numeric.IgnitionSize = &size

	cfg := fireconfig.Scenario{
		Flags: fireconfig.Flags{
			Wind:         *wind,
			Topography:   *topography,
			Use2DGrowth:  *use2D,
			BoundaryStop: *boundaryStop,
		},
		Numeric: numeric,
		Ignitions: []fireconfig.Ignition{
			{GeometryWKT: *ignitionWKT, AtUnixSeconds: startSec},
		},
	}

	prop := propagate.New(
		uniformEngine{fuelType: *fuelType},
		uniformFuel{ros: *ros},
		propagate.Options{
			Wind:             *wind,
			Topography:       *topography,
			Use2DGrowth:      *use2D,
			SpatialThreshold: *spatialThreshold,
		},
	)

	s, err := scenario.New(cfg, prop, nil)
	if err != nil {
		log.Fatalf("firesim: building scenario: %v", err)
	}

	var tracker *asset.AssetTracker
	if len(assets.assets) > 0 {
		tracker = asset.NewAssetTracker(assets.assets)
		s.Assets = tracker
		log.Printf("firesim: tracking %d asset(s)", len(assets.assets))
	}

	var db *storage.DB
	if *dbPath != "" {
		db, err = storage.Open(*dbPath, storage.MigrationsFS)
		if err != nil {
			log.Fatalf("firesim: opening checkpoint database: %v", err)
		}
		defer db.Close()
		log.Printf("firesim: persisting checkpoints to %s", *dbPath)
	}

	var csvWriter *csv.Writer
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("firesim: creating CSV output: %v", err)
		}
		defer f.Close()
		csvWriter = csv.NewWriter(f)
		defer csvWriter.Flush()
		csvWriter.Write([]string{"step", "unix_time", "outcome", "area_m2", "perimeter_m", "fire_count"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := scenario.Running
	for step := 0; step < *maxSteps; step++ {
		if ctx.Err() != nil {
			log.Printf("firesim: interrupted at step %d", s.CurrentStep)
			break
		}
		outcome, err = s.Advance(ctx)
		if err != nil {
			log.Fatalf("firesim: step %d: %v", s.CurrentStep, err)
		}

		if csvWriter != nil {
			writeStepRow(csvWriter, s, outcome)
		}
		if db != nil {
			cp := storage.BuildStepCheckpoint(*scenarioID, s, outcome)
			if err := db.CheckpointStore().InsertStep(cp); err != nil {
				log.Printf("firesim: checkpoint step %d: %v", s.CurrentStep, err)
			}
		}

		if outcome != scenario.Running {
			log.Printf("firesim: finished at step %d (%s), t=%s", s.CurrentStep, outcome, s.CurrentTime)
			break
		}
	}

	if tracker != nil && db != nil {
		persistCriticalPaths(db, tracker, *scenarioID)
	}
}

func writeStepRow(w *csv.Writer, s *scenario.Scenario, outcome scenario.Outcome) {
	var area, perim float64
	for _, sf := range s.Fires {
		area += sf.Area()
		perim += sf.PerimeterLength()
	}
	w.Write([]string{
		strconv.FormatUint(s.CurrentStep, 10),
		strconv.FormatInt(s.CurrentTime.Unix(), 10),
		outcome.String(),
		strconv.FormatFloat(area, 'f', 3, 64),
		strconv.FormatFloat(perim, 'f', 3, 64),
		strconv.Itoa(len(s.Fires)),
	})
}

func persistCriticalPaths(db *storage.DB, tracker *asset.AssetTracker, scenarioID string) {
	store := db.CriticalPathStore()
	for _, a := range tracker.Assets {
		for gi, node := range a.Geometries {
			if !node.Arrived {
				continue
			}
			path, err := tracker.BuildCriticalPath(node)
			if err != nil {
				log.Printf("firesim: critical path for %s[%d]: %v", a.Name, gi, err)
				continue
			}
			rec := storage.BuildCriticalPathRecord(scenarioID, a.Name, gi, node.ArrivalTime, path)
			if err := store.Insert(rec); err != nil {
				log.Printf("firesim: persisting critical path for %s[%d]: %v", a.Name, gi, err)
			}
		}
	}
}
