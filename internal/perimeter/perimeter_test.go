package perimeter

import (
	"testing"

	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(half float64) *firegeom.FireFront {
	return firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(-half, -half),
		firegeom.NewFirePoint(half, -half),
		firegeom.NewFirePoint(half, half),
		firegeom.NewFirePoint(-half, half),
	})
}

func TestCoalesce_RemovesTightCluster(t *testing.T) {
	t.Parallel()

	ff := firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(0, 0),
		firegeom.NewFirePoint(0.01, 0),
		firegeom.NewFirePoint(0.02, 0),
		firegeom.NewFirePoint(10, 0),
		firegeom.NewFirePoint(10, 10),
		firegeom.NewFirePoint(0, 10),
	})
	require.NoError(t, ff.Validate())

	coalesce(ff, 0.5)

	assert.Less(t, ff.VertexCount(), 6)
	require.NoError(t, ff.Validate())
}

func TestCoalesce_NeverDropsBelowThreeVertices(t *testing.T) {
	t.Parallel()

	ff := firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(0, 0),
		firegeom.NewFirePoint(0.01, 0),
		firegeom.NewFirePoint(0.01, 0.01),
	})

	coalesce(ff, 100)

	assert.Equal(t, 3, ff.VertexCount())
}

func TestDensify_InsertsMidpoints(t *testing.T) {
	t.Parallel()

	ff := square(50)
	before := ff.VertexCount()

	densify(ff, 10, false)

	assert.Greater(t, ff.VertexCount(), before)
	require.NoError(t, ff.Validate())

	// Every edge should now be within resolution.
	var maxEdge float64
	ff.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		q := ff.At(ff.Next(idx))
		d := dist(*p, *q)
		if d > maxEdge {
			maxEdge = d
		}
		return true
	})
	assert.LessOrEqual(t, maxEdge, 10.0+1e-9)
}

func TestDensify_NoOpBelowResolution(t *testing.T) {
	t.Parallel()

	ff := square(1)
	before := ff.VertexCount()

	densify(ff, 10, false)

	assert.Equal(t, before, ff.VertexCount())
}

func TestMaintain_SquareStaysValid(t *testing.T) {
	t.Parallel()

	ff := square(50)
	Maintain(ff, Options{PerimeterSpacing: 0.2, PerimeterResolution: 15})

	require.NoError(t, ff.Validate())
	assert.False(t, ff.IsClockwise())
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	a := square(10)
	b := firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(5, 5),
		firegeom.NewFirePoint(25, 5),
		firegeom.NewFirePoint(25, 25),
		firegeom.NewFirePoint(5, 25),
	})
	c := firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(1000, 1000),
		firegeom.NewFirePoint(1010, 1000),
		firegeom.NewFirePoint(1010, 1010),
		firegeom.NewFirePoint(1000, 1010),
	})

	assert.True(t, Overlaps(a, b))
	assert.False(t, Overlaps(a, c))
}

func TestContains(t *testing.T) {
	t.Parallel()

	ff := square(10)

	assert.True(t, Contains(ff, 0, 0))
	assert.False(t, Contains(ff, 100, 100))
}

func TestMerge_OverlappingSquaresProducesLargerFront(t *testing.T) {
	t.Parallel()

	a := square(10) // [-10,10]^2
	b := firegeom.NewFireFront([]firegeom.FirePoint{
		firegeom.NewFirePoint(5, 5),
		firegeom.NewFirePoint(25, 5),
		firegeom.NewFirePoint(25, 25),
		firegeom.NewFirePoint(5, 25),
	})

	merged := Merge(a, b)
	require.NotNil(t, merged)
	assert.GreaterOrEqual(t, merged.VertexCount(), 3)

	// A point far outside both original squares should not be part of the
	// merged vertex set's interior-discard criteria breaking validity.
	require.NoError(t, merged.Validate())
}
