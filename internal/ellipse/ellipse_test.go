package ellipse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_HeadAndBackRates(t *testing.T) {
	t.Parallel()

	in := Inputs{ROSeq: 5, ROS: 10, BROS: 2, FROS: 6, RAZCompass: 0}
	m := Build(in, true, true, 1.0)

	assert.InDelta(t, 10.0, m.HeadRate(), 1e-9)
	assert.InDelta(t, 2.0, m.BackRate(), 1e-9)
}

func TestBuild_FlankMatchesFROS(t *testing.T) {
	t.Parallel()

	in := Inputs{ROSeq: 5, ROS: 10, BROS: 2, FROS: 6, RAZCompass: 0}
	m := Build(in, true, true, 1.0)

	headAzimuth := m.razCartesian
	flankAzimuth := headAzimuth + math.Pi/2
	assert.InDelta(t, 6.0, m.RateAt(flankAzimuth), 1e-6)
}

func TestBuild_RateAtHeadAndBackBearings(t *testing.T) {
	t.Parallel()

	in := Inputs{ROSeq: 5, ROS: 10, BROS: 2, FROS: 6, RAZCompass: 0}
	m := Build(in, true, true, 1.0)

	assert.InDelta(t, 10.0, m.RateAt(m.razCartesian), 1e-6)
	assert.InDelta(t, 2.0, m.RateAt(m.razCartesian+math.Pi), 1e-6)
}

func TestBuild_WindOffCollapsesToCircular(t *testing.T) {
	t.Parallel()

	in := Inputs{ROSeq: 5, ROS: 10, BROS: 2, FROS: 8, RAZCompass: 0}
	m := Build(in, false, false, 1.0)

	assert.InDelta(t, 5.0, m.HeadRate(), 1e-9)
	assert.InDelta(t, 5.0, m.BackRate(), 1e-9)
	assert.InDelta(t, 5.0, m.RateAt(1.23), 1e-6, "circular ellipse is isotropic")
}

func TestBuild_PercentileScalerAppliesUniformly(t *testing.T) {
	t.Parallel()

	in := Inputs{ROSeq: 5, ROS: 10, BROS: 2, FROS: 6, RAZCompass: 0}
	full := Build(in, true, true, 1.0)
	half := Build(in, true, true, 0.5)

	assert.InDelta(t, full.HeadRate()/2, half.HeadRate(), 1e-9)
	assert.InDelta(t, full.BackRate()/2, half.BackRate(), 1e-9)
}

func TestPercentileTable(t *testing.T) {
	t.Parallel()

	table := NewPercentileTable()
	table.Set("fuel-c2", "grass-fire", 0.8)

	t.Run("disabled always returns 1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, table.Scaler(false, "fuel-c2", "grass-fire"))
	})

	t.Run("enabled and configured returns looked-up value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.8, table.Scaler(true, "fuel-c2", "grass-fire"))
	})

	t.Run("enabled but unconfigured returns 1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, table.Scaler(true, "fuel-c3", "grass-fire"))
	})
}
