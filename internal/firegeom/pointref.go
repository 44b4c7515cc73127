package firegeom

// PointRef is a portable, arena-indexed back-reference to a FirePoint held
// in an earlier (or the current) time step's point arena, replacing the
// raw m_prevPoint/m_succPoint pointers of the original implementation. A
// pointer into another goroutine's step snapshot is unsafe to share; a
// (step, index) pair is not, because each ScenarioTimeStep owns an
// immutable arena once published.
type PointRef struct {
	// Step is the time step index the referenced point's arena belongs to.
	Step uint64
	// Index is the point's position within that step's FireFront arena.
	Index int32
}

// NoRef is the sentinel (not the zero PointRef) meaning "no history link" — the point originates
// at an ignition or has not been linked yet.
var NoRef = PointRef{Step: ^uint64(0), Index: -1}

// IsValid reports whether r refers to a real point rather than NoRef.
func (r PointRef) IsValid() bool { return r != NoRef }
