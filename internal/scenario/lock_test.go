package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_ConcurrentReads(t *testing.T) {
	t.Parallel()

	l := NewLock()
	l.BeginRead()
	l.BeginRead()
	l.EndRead()
	l.EndRead()
}

func TestLock_SimulationRejectsWriteAndSimulation(t *testing.T) {
	t.Parallel()

	l := NewLock()
	require.NoError(t, l.BeginSimulation())
	defer l.EndSimulation()

	assert.Error(t, l.BeginSimulation())
	assert.Error(t, l.BeginWrite())
}

func TestLock_WriteExcludesReads(t *testing.T) {
	t.Parallel()

	l := NewLock()
	require.NoError(t, l.BeginWrite())

	done := make(chan struct{})
	go func() {
		l.BeginRead()
		close(done)
		l.EndRead()
	}()

	select {
	case <-done:
		t.Fatal("read acquired while write held")
	case <-time.After(30 * time.Millisecond):
	}

	l.EndWrite()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("read never unblocked after write released")
	}
}
