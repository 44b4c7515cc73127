package grid

import (
	"time"
)

// GustBias selects where within each hourly period's gust sub-interval the
// gust window falls.
type GustBias int

const (
	BiasStart GustBias = iota
	BiasCenter
	BiasEnd
)

// GustMode selects whether GustingModel blends wind at all.
type GustMode int

const (
	// ModeOff: ApplyGusting always returns the steady wind speed.
	ModeOff GustMode = iota
	// ModeAverage: ApplyGusting returns the gust speed for exactly the
	// configured fraction of each hourly period, positioned per Bias, so
	// the long-run time-average gusting fraction equals PercentGusting.
	ModeAverage
)

// GustingModel deterministically blends steady and gust wind speed across
// an hourly period, grounded on the teacher's deterministic threshold/ratio
// arithmetic style in internal/lidar/l3grid/background_drift.go (plain
// float comparisons against a configured fraction, no randomness).
type GustingModel struct {
	Mode           GustMode
	GustsPerHour   int
	PercentGusting float64 // 0-100
	Bias           GustBias
}

const hour = time.Hour

// window returns the [start, end) offset, in seconds from the top of the
// current hour, of the sub-interval's gust window containing t's phase
// within its gusts-per-hour slot.
func (g GustingModel) window(subIndex int) (start, end time.Duration) {
	subLen := hour / time.Duration(g.GustsPerHour)
	gustLen := time.Duration(float64(subLen) * g.PercentGusting / 100.0)
	subStart := time.Duration(subIndex) * subLen

	switch g.Bias {
	case BiasStart:
		return subStart, subStart + gustLen
	case BiasEnd:
		return subStart + subLen - gustLen, subStart + subLen
	default: // BiasCenter
		offset := (subLen - gustLen) / 2
		return subStart + offset, subStart + offset + gustLen
	}
}

func (g GustingModel) phase(t time.Time) (subIndex int, intoHour time.Duration) {
	intoHour = time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
	subLen := hour / time.Duration(g.GustsPerHour)
	subIndex = int(intoHour / subLen)
	return subIndex, intoHour
}

// ApplyGusting returns the effective wind speed at time t: gust if t falls
// within the current sub-interval's gust window, steady otherwise. ws and
// gust are the steady and gust wind speeds already sampled from the
// GridEngine for this point; ApplyGusting only selects between them.
func (g GustingModel) ApplyGusting(t time.Time, ws, gust float64) float64 {
	if g.Mode == ModeOff || g.GustsPerHour <= 0 || g.PercentGusting <= 0 {
		return ws
	}
	subIndex, intoHour := g.phase(t)
	start, end := g.window(subIndex)
	if intoHour >= start && intoHour < end {
		return gust
	}
	return ws
}

// NextEventTime returns the next gust-window boundary (start or end) at or
// after from, so the Scheduler can snap a step's end time to it rather than
// stepping over a gust transition.
func (g GustingModel) NextEventTime(from time.Time) time.Time {
	if g.Mode == ModeOff || g.GustsPerHour <= 0 {
		return from
	}
	hourStart := from.Truncate(hour)
	subIndex, intoHour := g.phase(from)

	for i := 0; i < g.GustsPerHour+1; i++ {
		idx := subIndex + i
		start, end := g.window(idx % g.GustsPerHour)
		wrap := time.Duration(idx/g.GustsPerHour) * hour
		candidates := []time.Duration{start + wrap, end + wrap}
		for _, c := range candidates {
			if c > intoHour {
				return hourStart.Add(c)
			}
		}
	}
	return from
}
