package fireconfig

import (
	"time"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
)

// Ignition describes one point, line, or polygon ignition source used to
// prime a scenario's step-0 fronts. Geometry is supplied by the host; this
// struct only carries the scenario-level knobs layered on top of it.
type Ignition struct {
	// GeometryWKT is the ignition geometry in well-known text, interpreted
	// by the host's GridEngine spatial reference.
	GeometryWKT string
	// AtUnixSeconds is the ignition time.
	AtUnixSeconds int64
	// SizeMetres overrides Numeric.IgnitionSize for this ignition only,
	// when non-nil.
	SizeMetres *float64
}

// Scenario is the full configuration surface for one scenario: lifecycle
// bounds, the feature flags and numeric tuning from flags.go, and the
// ignitions that prime it.
type Scenario struct {
	Flags     Flags
	Numeric   Numeric
	Ignitions []Ignition
}

// DefaultScenario returns a Scenario with every flag off and every numeric
// value at its documented default, and no ignitions.
func DefaultScenario() Scenario {
	return Scenario{
		Flags:   DefaultFlags(),
		Numeric: DefaultNumeric(),
	}
}

// Validate checks the scenario's numeric tuning and ignition list, reporting
// every problem found rather than stopping at the first.
func (s Scenario) Validate() error {
	v := fireerrors.NewValidationCollector("fireconfig.Scenario")
	if err := s.Numeric.Validate(); err != nil {
		v.Checkf(false, "%s", err.Error())
	}
	v.Checkf(len(s.Ignitions) > 0, "at least one ignition is required")
	for i, ign := range s.Ignitions {
		v.Checkf(ign.GeometryWKT != "", "ignitions[%d]: geometry is required", i)
		if ign.SizeMetres != nil {
			v.Checkf(*ign.SizeMetres >= 0, "ignitions[%d]: size must be non-negative, got %f", i, *ign.SizeMetres)
		}
	}
	if s.Numeric.StartTimeUnixSeconds != nil {
		for i, ign := range s.Ignitions {
			v.Checkf(ign.AtUnixSeconds >= *s.Numeric.StartTimeUnixSeconds,
				"ignitions[%d]: ignition time precedes START_TIME", i)
		}
	}
	return v.Err()
}

// StartTime returns the configured START_TIME as a time.Time in UTC, or the
// zero time if unset.
func (s Scenario) StartTime() time.Time {
	if s.Numeric.StartTimeUnixSeconds == nil {
		return time.Time{}
	}
	return time.Unix(*s.Numeric.StartTimeUnixSeconds, 0).UTC()
}

// EndTime returns the configured END_TIME as a time.Time in UTC, or the zero
// time if unset.
func (s Scenario) EndTime() time.Time {
	if s.Numeric.EndTimeUnixSeconds == nil {
		return time.Time{}
	}
	return time.Unix(*s.Numeric.EndTimeUnixSeconds, 0).UTC()
}

// DisplayInterval returns the configured DISPLAY_INTERVAL as a
// time.Duration.
func (s Scenario) DisplayInterval() time.Duration {
	return time.Duration(s.Numeric.GetDisplayIntervalSeconds() * float64(time.Second))
}
