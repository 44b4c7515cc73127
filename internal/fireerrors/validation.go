package fireerrors

import (
	"fmt"
	"strings"
)

// ValidationCollector accumulates field-level validation failures so a
// config or input struct can be checked exhaustively and reported in one
// error instead of failing fast on the first bad field.
type ValidationCollector struct {
	component string
	problems  []string
}

// NewValidationCollector returns a collector that tags every problem with
// component, e.g. "fireconfig.Flags".
func NewValidationCollector(component string) *ValidationCollector {
	return &ValidationCollector{component: component}
}

// Checkf records a problem if ok is false. format/args describe the failure,
// e.g. "SpreadMomentum must be in [0, 1], got %f".
func (v *ValidationCollector) Checkf(ok bool, format string, args ...any) {
	if ok {
		return
	}
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// Err returns nil if no problems were recorded, otherwise a single
// KindValidation FireError listing every problem.
func (v *ValidationCollector) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return New(v.component, KindValidation, "%s", strings.Join(v.problems, "; "))
}

// Empty reports whether no problems have been recorded yet.
func (v *ValidationCollector) Empty() bool { return len(v.problems) == 0 }
