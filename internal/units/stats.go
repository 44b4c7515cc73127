// Package units provides unit-conversion helpers shared across the engine:
// timezone lookups for grid attribute responses, and the fixed conversion
// table used by firegeom.FirePoint.RetrieveAttribute.
package units

import "fmt"

// StatClass identifies which physical quantity a fire-behavior statistic
// belongs to, so a single conversion table can serve every CWFGM_FIRE_STAT_*
// value without per-stat switch duplication at call sites.
type StatClass int

const (
	// ClassUnitless covers stats that pass through unit conversion unchanged
	// (CFB, HCFB, RAZ, ACTIVE).
	ClassUnitless StatClass = iota
	// ClassROS covers rate-of-spread-kind stats (RSI, ROSEQ, ROS, BROS, FROS, ROS).
	ClassROS
	// ClassIntensity covers fire intensity stats (FI, HFI).
	ClassIntensity
	// ClassConsumption covers fuel-consumption stats (SFC, CFC, TFC).
	ClassConsumption
	// ClassLength covers flame length.
	ClassLength
)

// Storage units: the native unit each StatClass is held in internally.
//   ClassROS         -> m/min
//   ClassIntensity   -> kW/m
//   ClassConsumption -> kg/m^2
//   ClassLength      -> m
// These match the FBP standard's native units and the spec's retrieval table.

// Unit codes recognized by Convert. Code 0 means "no conversion" (native units).
const (
	UnitNative = 0

	// ROS-kind alternates.
	UnitMetresPerMinute = iota + 1
	UnitMetresPerSecond
	UnitChainsPerHour
	UnitFeetPerMinute

	// Intensity alternates.
	UnitKilowattPerMetre
	UnitBtuPerFootPerSecond

	// Consumption alternates.
	UnitKgPerSquareMetre
	UnitTonnePerHectare
	UnitPoundPerSquareFoot

	// Length alternates.
	UnitMetres
	UnitFeet
	UnitChains
)

// Convert converts a value of the given StatClass from its native storage
// unit to the requested unit code. Unit code 0 (UnitNative) and unitless
// classes are pass-through, matching RetrieveAttribute's "units == 0" rule.
func Convert(class StatClass, value float64, unit int) (float64, error) {
	if unit == UnitNative || class == ClassUnitless {
		return value, nil
	}
	switch class {
	case ClassROS:
		switch unit {
		case UnitMetresPerMinute:
			return value, nil
		case UnitMetresPerSecond:
			return value / 60.0, nil
		case UnitChainsPerHour:
			return value * 60.0 / chainMetres, nil
		case UnitFeetPerMinute:
			return value / footMetres, nil
		}
	case ClassIntensity:
		switch unit {
		case UnitKilowattPerMetre:
			return value, nil
		case UnitBtuPerFootPerSecond:
			return value * kwPerMetreToBtuPerFootSecond, nil
		}
	case ClassConsumption:
		switch unit {
		case UnitKgPerSquareMetre:
			return value, nil
		case UnitTonnePerHectare:
			return value * 10.0, nil
		case UnitPoundPerSquareFoot:
			return value * kgm2ToLbft2, nil
		}
	case ClassLength:
		switch unit {
		case UnitMetres:
			return value, nil
		case UnitFeet:
			return value / footMetres, nil
		case UnitChains:
			return value / chainMetres, nil
		}
	}
	return 0, fmt.Errorf("units: unsupported unit code %d for stat class %d", unit, class)
}

const (
	footMetres                   = 0.3048
	chainMetres                  = 20.1168
	kwPerMetreToBtuPerFootSecond = 0.28887942
	kgm2ToLbft2                  = 0.20481614
)
