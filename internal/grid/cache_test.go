package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEngine struct {
	calls int
	attrs int
}

func (e *countingEngine) Sample(x, y float64, t time.Time) (Sample, error) {
	e.calls++
	return Sample{FuelType: "grass"}, nil
}

func (e *countingEngine) Attributes() (Attributes, error) {
	e.attrs++
	return Attributes{PlotResolutionM: 1.0}, nil
}

func TestCachingSampler_CachesByQuantizedKey(t *testing.T) {
	t.Parallel()

	inner := &countingEngine{}
	c := NewCachingSampler(inner)
	t0 := time.Unix(0, 0)

	s1, err := c.Sample(1, 2, t0)
	require.NoError(t, err)
	s2, err := c.Sample(1, 2, t0)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, c.Len())
}

func TestCachingSampler_DistinctCellsDontCollide(t *testing.T) {
	t.Parallel()

	inner := &countingEngine{}
	c := NewCachingSampler(inner)
	t0 := time.Unix(0, 0)

	_, _ = c.Sample(1, 2, t0)
	_, _ = c.Sample(3, 4, t0)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingSampler_AttributesMemoized(t *testing.T) {
	t.Parallel()

	inner := &countingEngine{}
	c := NewCachingSampler(inner)

	_, err := c.Attributes()
	require.NoError(t, err)
	_, err = c.Attributes()
	require.NoError(t, err)
	assert.Equal(t, 1, inner.attrs)
}

type erroringEngine struct{}

func (erroringEngine) Sample(x, y float64, t time.Time) (Sample, error) {
	return Sample{}, errors.New("boom")
}
func (erroringEngine) Attributes() (Attributes, error) { return Attributes{}, errors.New("boom") }

func TestCachingSampler_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	c := NewCachingSampler(erroringEngine{})
	_, err := c.Sample(0, 0, time.Unix(0, 0))
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCachingSampler_Clear(t *testing.T) {
	t.Parallel()

	inner := &countingEngine{}
	c := NewCachingSampler(inner)
	_, _ = c.Sample(0, 0, time.Unix(0, 0))
	require.Equal(t, 1, c.Len())
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
