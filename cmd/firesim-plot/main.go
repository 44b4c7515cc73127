// Command firesim-plot renders the fire-front rings of each checkpointed
// ScenarioTimeStep to a PNG via gonum.org/v1/plot, one file per step.
// Grounded on internal/lidar/monitor/gridplotter.go's
// sample-then-render-per-key shape: there, one PNG per ring per metric;
// here, one PNG per step, one line per fire ring (exterior plus holes).
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wise-wildfire/firegrowth/internal/storage"
)

func main() {
	dbPath := flag.String("db", "", "sqlite checkpoint database path (required)")
	scenarioID := flag.String("scenario-id", "", "scenario id to render (required)")
	outDir := flag.String("out", "plots", "output directory for PNG files")
	step := flag.Int64("step", -1, "render only this step (default: every checkpointed step)")
	flag.Parse()

	if *dbPath == "" || *scenarioID == "" {
		log.Fatal("firesim-plot: -db and -scenario-id are required")
	}

	db, err := storage.Open(*dbPath, storage.MigrationsFS)
	if err != nil {
		log.Fatalf("firesim-plot: opening %s: %v", *dbPath, err)
	}
	defer db.Close()

	store := db.CheckpointStore()
	var checkpoints []*storage.StepCheckpoint
	if *step >= 0 {
		cp, err := store.GetStep(*scenarioID, uint64(*step))
		if err != nil {
			log.Fatalf("firesim-plot: step %d: %v", *step, err)
		}
		checkpoints = []*storage.StepCheckpoint{cp}
	} else {
		checkpoints, err = store.ListSteps(*scenarioID)
		if err != nil {
			log.Fatalf("firesim-plot: listing steps: %v", err)
		}
	}
	if len(checkpoints) == 0 {
		log.Fatalf("firesim-plot: no checkpoints found for scenario %q", *scenarioID)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("firesim-plot: creating output dir: %v", err)
	}

	for _, cp := range checkpoints {
		if err := renderStep(cp, *outDir); err != nil {
			log.Printf("firesim-plot: step %d: %v", cp.Step, err)
			continue
		}
	}
	log.Printf("firesim-plot: rendered %d step(s) to %s", len(checkpoints), *outDir)
}

// renderStep draws every fire's exterior and hole rings as closed polylines
// on one plot, colored by fire index, and saves it as step_%05d.png.
func renderStep(cp *storage.StepCheckpoint, outDir string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Step %d (%s, t=%s)", cp.Step, cp.Outcome, cp.At.Format("2006-01-02T15:04:05Z"))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	if len(cp.Fires) == 0 {
		return fmt.Errorf("no fires in checkpoint")
	}

	for fi, fire := range cp.Fires {
		c := ringColor(fi)
		if err := addRing(p, fire.Exterior, fmt.Sprintf("fire %d exterior", fi), c); err != nil {
			return err
		}
		for hi, hole := range fire.Holes {
			if err := addRing(p, hole, fmt.Sprintf("fire %d hole %d", fi, hi), c); err != nil {
				return err
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false

	out := filepath.Join(outDir, fmt.Sprintf("step_%05d.png", cp.Step))
	return p.Save(10*vg.Inch, 10*vg.Inch, out)
}

func addRing(p *plot.Plot, front storage.FrontDTO, label string, c color.Color) error {
	if len(front.Points) == 0 {
		return nil
	}
	pts := make(plotter.XYs, 0, len(front.Points)+1)
	for _, pt := range front.Points {
		pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
	}
	// Close the ring so it renders as a loop rather than an open line.
	pts = append(pts, plotter.XY{X: front.Points[0].X, Y: front.Points[0].Y})

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// ringColor picks a distinct color per fire index, cycling through a small
// fixed palette rather than the teacher's HSL sweep — scenarios rarely
// carry more than a handful of concurrent fires.
func ringColor(i int) color.Color {
	palette := []color.Color{
		color.RGBA{R: 217, G: 60, B: 40, A: 255},
		color.RGBA{R: 40, G: 120, B: 217, A: 255},
		color.RGBA{R: 40, G: 180, B: 90, A: 255},
		color.RGBA{R: 217, G: 160, B: 40, A: 255},
		color.RGBA{R: 140, G: 60, B: 217, A: 255},
	}
	return palette[i%len(palette)]
}
