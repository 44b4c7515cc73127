package fireconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_ValidateRequiresIgnitions(t *testing.T) {
	t.Parallel()

	s := DefaultScenario()
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one ignition is required")
}

func TestScenario_ValidateCollectsAllIgnitionProblems(t *testing.T) {
	t.Parallel()

	s := DefaultScenario()
	bad := -1.0
	s.Ignitions = []Ignition{
		{GeometryWKT: ""},
		{GeometryWKT: "POINT(0 0)", SizeMetres: &bad},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignitions[0]")
	assert.Contains(t, err.Error(), "ignitions[1]")
}

func TestScenario_ValidOnDisk(t *testing.T) {
	t.Parallel()

	start := int64(0)
	end := int64(600)
	s := DefaultScenario()
	s.Numeric.StartTimeUnixSeconds = &start
	s.Numeric.EndTimeUnixSeconds = &end
	s.Ignitions = []Ignition{{GeometryWKT: "POINT(0 0)", AtUnixSeconds: 0}}

	assert.NoError(t, s.Validate())
	assert.Equal(t, "1970-01-01T00:00:00Z", s.StartTime().Format("2006-01-02T15:04:05Z"))
}

func TestScenario_DisplayInterval(t *testing.T) {
	t.Parallel()

	s := DefaultScenario()
	assert.Equal(t, 3600.0, s.DisplayInterval().Seconds())

	sixty := 60.0
	s.Numeric.DisplayIntervalSeconds = &sixty
	assert.Equal(t, 60.0, s.DisplayInterval().Seconds())
}

func TestNumeric_ValidateEndBeforeStart(t *testing.T) {
	t.Parallel()

	n := DefaultNumeric()
	start := int64(600)
	end := int64(0)
	n.StartTimeUnixSeconds = &start
	n.EndTimeUnixSeconds = &end

	err := n.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "END_TIME")
}
