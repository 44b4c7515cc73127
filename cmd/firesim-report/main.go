// Command firesim-report renders an HTML dashboard of per-step area,
// perimeter, fire-count, and perimeter vertex-count statistics for a
// checkpointed scenario, via go-echarts/go-echarts/v2. Grounded on
// internal/lidar/monitor/echarts_handlers.go's chart-per-metric dashboard
// shape (there: handleTrafficChart's bar of throughput counters,
// handleSweepDashboard's HTML wrapper); here the charts are time series
// over step rather than a single current snapshot, so area/perimeter and
// vertex count are line charts, while fire count stays a bar chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wise-wildfire/firegrowth/internal/storage"
)

func main() {
	dbPath := flag.String("db", "", "sqlite checkpoint database path (required)")
	scenarioID := flag.String("scenario-id", "", "scenario id to report on (required)")
	out := flag.String("out", "report.html", "output HTML file path")
	flag.Parse()

	if *dbPath == "" || *scenarioID == "" {
		log.Fatal("firesim-report: -db and -scenario-id are required")
	}

	db, err := storage.Open(*dbPath, storage.MigrationsFS)
	if err != nil {
		log.Fatalf("firesim-report: opening %s: %v", *dbPath, err)
	}
	defer db.Close()

	checkpoints, err := db.CheckpointStore().ListSteps(*scenarioID)
	if err != nil {
		log.Fatalf("firesim-report: listing steps: %v", err)
	}
	if len(checkpoints) == 0 {
		log.Fatalf("firesim-report: no checkpoints found for scenario %q", *scenarioID)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("firesim report: %s", *scenarioID)
	page.AddCharts(
		areaPerimeterChart(*scenarioID, checkpoints),
		fireCountChart(*scenarioID, checkpoints),
		pointDensityChart(*scenarioID, checkpoints),
	)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("firesim-report: creating %s: %v", *out, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("firesim-report: rendering: %v", err)
	}
	log.Printf("firesim-report: wrote %s (%d steps)", *out, len(checkpoints))
}

func stepLabels(checkpoints []*storage.StepCheckpoint) []string {
	labels := make([]string, len(checkpoints))
	for i, cp := range checkpoints {
		labels[i] = strconv.FormatUint(cp.Step, 10)
	}
	return labels
}

func areaPerimeterChart(scenarioID string, checkpoints []*storage.StepCheckpoint) *charts.Line {
	area := make([]opts.LineData, len(checkpoints))
	perim := make([]opts.LineData, len(checkpoints))
	for i, cp := range checkpoints {
		area[i] = opts.LineData{Value: cp.Area}
		perim[i] = opts.LineData{Value: cp.PerimeterLength}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Area & perimeter", Subtitle: scenarioID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
	)
	line.SetXAxis(stepLabels(checkpoints)).
		AddSeries("area (m2)", area).
		AddSeries("perimeter (m)", perim)
	return line
}

func fireCountChart(scenarioID string, checkpoints []*storage.StepCheckpoint) *charts.Bar {
	counts := make([]opts.BarData, len(checkpoints))
	for i, cp := range checkpoints {
		counts[i] = opts.BarData{Value: len(cp.Fires)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Active fire count", Subtitle: scenarioID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
	)
	bar.SetXAxis(stepLabels(checkpoints)).
		AddSeries("fires", counts)
	return bar
}

// pointDensityChart plots total tracked perimeter vertex count per step, a
// proxy for PerimeterMaintenance's vertex-density upkeep doing its job: a
// healthy run holds this roughly flat relative to front length rather than
// growing unbounded.
func pointDensityChart(scenarioID string, checkpoints []*storage.StepCheckpoint) *charts.Line {
	counts := make([]opts.LineData, len(checkpoints))
	for i, cp := range checkpoints {
		n := 0
		for _, fire := range cp.Fires {
			n += len(fire.Exterior.Points)
			for _, h := range fire.Holes {
				n += len(h.Points)
			}
		}
		counts[i] = opts.LineData{Value: n}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Total perimeter vertex count", Subtitle: scenarioID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
	)
	line.SetXAxis(stepLabels(checkpoints)).
		AddSeries("vertices", counts)
	return line
}
