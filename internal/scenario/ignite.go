package scenario

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wise-wildfire/firegrowth/internal/fireconfig"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/grid"
	"github.com/wise-wildfire/firegrowth/internal/propagate"
)

// New builds a Scenario from cfg's ignitions, each becoming a step-0
// ActiveFire/ScenarioFire with a regular-polygon front of the configured
// ignition size. Only point ignitions (GeometryWKT of the form
// "POINT (x y)") are supported here; line/polygon ignition WKT parsing is a
// host-side concern (spec.md §6.1 treats ignition geometry as supplied, not
// produced, by this engine).
func New(cfg fireconfig.Scenario, prop *propagate.Propagator, gusting *grid.GustingModel) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scenario{
		Config:     cfg,
		Propagator: prop,
		Scheduler:  NewScheduler(cfg.Numeric, gusting, cfg.StartTime(), cfg.EndTime()),
		Stops:      &StopConditions{},
		Lock:       NewLock(),
		Fires:      make(map[uuid.UUID]*ScenarioFire),
	}
	for _, ign := range cfg.Ignitions {
		x, y, ok := parsePointWKT(ign.GeometryWKT)
		if !ok {
			continue
		}
		radius := 0.0
		if ign.SizeMetres != nil {
			radius = *ign.SizeMetres
		} else if cfg.Numeric.IgnitionSize != nil {
			radius = *cfg.Numeric.IgnitionSize
		}
		if radius <= 0 {
			radius = 1.0
		}
		fire := NewActiveFire(time.Unix(ign.AtUnixSeconds, 0).UTC())
		front := diskFront(x, y, radius, 16)
		s.Fires[fire.ID] = NewScenarioFire(fire, front)
	}
	s.CurrentTime = cfg.StartTime()
	return s, nil
}

// diskFront returns a regular n-gon approximation of a circle, used to seed
// a point ignition's step-0 front — the boundary-case "single-point
// ignition ... produces a circular perimeter" of spec.md §8 starts from
// exactly this shape.
func diskFront(cx, cy, radius float64, n int) *firegeom.FireFront {
	pts := make([]firegeom.FirePoint, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = firegeom.NewFirePoint(cx+radius*math.Cos(theta), cy+radius*math.Sin(theta))
	}
	return firegeom.NewFireFront(pts)
}

// parsePointWKT extracts (x, y) from a minimal "POINT (x y)" WKT string.
func parsePointWKT(wkt string) (x, y float64, ok bool) {
	trimmed := strings.TrimSpace(wkt)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "POINT") {
		return 0, 0, false
	}
	open := strings.Index(trimmed, "(")
	shut := strings.LastIndex(trimmed, ")")
	if open < 0 || shut < 0 || shut <= open {
		return 0, 0, false
	}
	inner := trimmed[open+1 : shut]
	n, err := fmt.Sscanf(inner, "%g %g", &x, &y)
	if err != nil || n != 2 {
		return 0, 0, false
	}
	return x, y, true
}
