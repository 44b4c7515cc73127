package fireerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationCollector_NoProblems(t *testing.T) {
	t.Parallel()

	v := NewValidationCollector("fireconfig.Flags")
	v.Checkf(true, "unused")
	assert.True(t, v.Empty())
	assert.NoError(t, v.Err())
}

func TestValidationCollector_CollectsAll(t *testing.T) {
	t.Parallel()

	v := NewValidationCollector("fireconfig.Flags")
	v.Checkf(false, "SpreadMomentum must be in [0, 1], got %f", -0.5)
	v.Checkf(true, "this one should not appear")
	v.Checkf(false, "TimeStepSeconds must be positive, got %d", 0)

	require.False(t, v.Empty())
	err := v.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SpreadMomentum")
	assert.Contains(t, err.Error(), "TimeStepSeconds")
	assert.NotContains(t, err.Error(), "should not appear")

	var fe *FireError
	require.True(t, As(err, &fe))
	assert.Equal(t, KindValidation, fe.Kind)
}
