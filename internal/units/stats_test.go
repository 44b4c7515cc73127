package units

import (
	"math"
	"testing"
)

func TestConvert_ROS(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     int
		expected float64
	}{
		{"native passthrough", 10.0, UnitNative, 10.0},
		{"m/min explicit", 10.0, UnitMetresPerMinute, 10.0},
		{"m/min to m/s", 60.0, UnitMetresPerSecond, 1.0},
		{"m/min to ft/min", 1.0, UnitFeetPerMinute, 1.0 / footMetres},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(ClassROS, tt.value, tt.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Convert(%v, %v) = %v, want %v", tt.value, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestConvert_Unitless(t *testing.T) {
	got, err := Convert(ClassUnitless, 0.42, UnitKilowattPerMetre)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.42 {
		t.Errorf("unitless stat should pass through unchanged, got %v", got)
	}
}

func TestConvert_UnknownUnit(t *testing.T) {
	if _, err := Convert(ClassROS, 1.0, 9999); err == nil {
		t.Error("expected error for unsupported unit code")
	}
}

func TestConvert_Intensity(t *testing.T) {
	got, err := Convert(ClassIntensity, 1.0, UnitBtuPerFootPerSecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-kwPerMetreToBtuPerFootSecond) > 1e-9 {
		t.Errorf("got %v, want %v", got, kwPerMetreToBtuPerFootSecond)
	}
}
