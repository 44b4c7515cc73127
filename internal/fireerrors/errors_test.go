package fireerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireError_Unwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	wrapped := Wrap("propagate", KindPropagation, base)

	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, KindPropagation, wrapped.Kind)
	assert.Contains(t, wrapped.Error(), "propagate")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestWrap_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Wrap("scenario", KindState, nil))
}

func TestSentinels_Is(t *testing.T) {
	t.Parallel()

	t.Run("simulation running wraps through", func(t *testing.T) {
		t.Parallel()
		err := Wrap("scenario", KindState, ErrSimulationRunning)
		assert.True(t, Is(err, ErrSimulationRunning))
	})

	t.Run("distinct sentinels are distinguishable", func(t *testing.T) {
		t.Parallel()
		assert.False(t, Is(ErrAssetNotFound, ErrOutOfBounds))
	})
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	cases := map[Kind]string{
		KindValidation:  "validation",
		KindState:       "state",
		KindGeometry:    "geometry",
		KindPropagation: "propagation",
		KindStorage:     "storage",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}
