package scenario

// StepStats is the per-step scenario-wide statistics snapshot StopConditions
// evaluates against, matching the aggregate-stat-plus-threshold-comparison
// shape of l5tracks's TrackingMetrics.
type StepStats struct {
	Area             float64
	PerimeterLength  float64
	StepIndex        int
	ElapsedSeconds   float64
}

// StopConditions is a bag of predicates over StepStats, any one of which
// terminates a run with CompleteStopCondition. Grounded on l5tracks's
// aggregate-metrics-plus-threshold pattern (a stats struct plus named
// threshold comparisons) rather than a generic predicate-function list, so
// each condition can report *why* it fired.
type StopConditions struct {
	AreaThreshold float64 // 0 disables.

	// GrowthRateThreshold: if the perimeter's growth rate falls below this
	// (units/second) for GrowthRateConsecutive steps in a row, stop.
	GrowthRateThreshold     float64
	GrowthRateConsecutive   int
	lowGrowthStreak         int
	lastPerimeterLength     float64
	lastElapsed             float64
	havePrevious            bool

	// ResponseWindowSeconds: if > 0, stop once elapsed time reaches it.
	ResponseWindowSeconds float64
}

// Evaluate checks every configured predicate against stats and returns the
// name of the first one that fires, or "" if none did. Predicates are
// checked in a fixed order (area, growth-rate, response-window) so
// diagnostics are deterministic.
func (s *StopConditions) Evaluate(stats StepStats) string {
	if s.AreaThreshold > 0 && stats.Area >= s.AreaThreshold {
		return "area_threshold"
	}

	if s.GrowthRateThreshold > 0 && s.GrowthRateConsecutive > 0 {
		if s.havePrevious {
			dt := stats.ElapsedSeconds - s.lastElapsed
			if dt > 0 {
				rate := (stats.PerimeterLength - s.lastPerimeterLength) / dt
				if rate < s.GrowthRateThreshold {
					s.lowGrowthStreak++
				} else {
					s.lowGrowthStreak = 0
				}
			}
		}
		s.lastPerimeterLength = stats.PerimeterLength
		s.lastElapsed = stats.ElapsedSeconds
		s.havePrevious = true
		if s.lowGrowthStreak >= s.GrowthRateConsecutive {
			return "growth_rate_below_threshold"
		}
	}

	if s.ResponseWindowSeconds > 0 && stats.ElapsedSeconds >= s.ResponseWindowSeconds {
		return "response_window_elapsed"
	}

	return ""
}
