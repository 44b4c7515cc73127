// Package scenario holds a running simulation's mutable state: the set of
// ActiveFires and their ScenarioFires, the Scheduler that advances wall-clock
// time, and the StopConditions that decide when a run is finished. It is the
// "l6/pipeline" layer: orchestration over firegeom/grid/ellipse/propagate/
// perimeter, with no geometry of its own.
package scenario

import (
	"sync"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
)

// Lock is a three-regime counter-based reader/writer lock: any number of
// concurrent reads; at most one simulation step at a time, which runs
// alongside reads; and a write, which excludes reads, simulation, and other
// writes. A simulation step and a write are mutually exclusive. Grounded on the teacher's sync.RWMutex-per-manager
// pattern (internal/lidar/l3grid/background.go's BackgroundGrid.mu) but
// extended to a third regime because a running scenario must reject
// concurrent configuration writes without blocking concurrent read-only
// queries (stat export, UI polling) the way a plain RWMutex would.
type Lock struct {
	mu         sync.Mutex
	cond       *sync.Cond
	readers    int
	simulating bool
	writing    bool
}

// NewLock returns a ready-to-use Lock.
func NewLock() *Lock {
	l := &Lock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// BeginRead acquires a read-only regime: blocks only while a write is in
// progress. Concurrent with other reads and with simulation.
func (l *Lock) BeginRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writing {
		l.cond.Wait()
	}
	l.readers++
}

// EndRead releases a read-only regime.
func (l *Lock) EndRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readers--
	l.cond.Broadcast()
}

// BeginSimulation acquires the simulation regime without blocking. Returns
// fireerrors.ErrSimulationRunning immediately if another simulation step or
// a write is in progress.
func (l *Lock) BeginSimulation() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.simulating || l.writing {
		return fireerrors.Wrap("scenario.Lock", fireerrors.KindState, fireerrors.ErrSimulationRunning)
	}
	l.simulating = true
	return nil
}

// EndSimulation releases the simulation regime.
func (l *Lock) EndSimulation() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.simulating = false
	l.cond.Broadcast()
}

// BeginWrite acquires the exclusive write regime: blocks until no reads and
// no simulation are in progress, then excludes everything else. Returns
// fireerrors.ErrSimulationRunning immediately (without waiting) if a
// simulation step is currently in progress — configuration changes during a
// step are always rejected rather than queued, per spec.md §7's
// "configuration setters fail fast ... and leave state unchanged" policy.
func (l *Lock) BeginWrite() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.simulating {
		return fireerrors.Wrap("scenario.Lock", fireerrors.KindState, fireerrors.ErrSimulationRunning)
	}
	for l.readers > 0 || l.writing {
		l.cond.Wait()
		if l.simulating {
			return fireerrors.Wrap("scenario.Lock", fireerrors.KindState, fireerrors.ErrSimulationRunning)
		}
	}
	l.writing = true
	return nil
}

// EndWrite releases the exclusive write regime.
func (l *Lock) EndWrite() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writing = false
	l.cond.Broadcast()
}
