// Package grid defines the narrow interfaces the propagation engine
// consumes for landscape data (GridEngine, FuelModel), a caching decorator
// over GridEngine, and the deterministic gusting wind blend. None of these
// types own a goroutine or do I/O themselves — they are the seams the host
// application plugs its own GIS/weather backend into.
package grid

import "time"

// Weather is one (x, y, t) sample's weather inputs, as returned by
// GridEngine.Sample.
type Weather struct {
	WindSpeedKPH    float64
	WindAzimuthDeg  float64 // compass degrees the wind blows FROM
	TemperatureC    float64
	RelativeHumidity float64
	PrecipMM        float64
	FWI             float64
}

// Sample is a single landscape sample at (x, y, t): fuel type plus terrain
// and weather, matching GridEngine's consumed interface (spec.md §6.1).
type Sample struct {
	FuelType string
	Slope    float64 // degrees
	Aspect   float64 // compass degrees
	Elevation float64 // metres
	Weather  Weather
}

// Attributes describes grid-wide metadata GridEngine exposes by attribute
// id: spatial reference, plot resolution, and timezone.
type Attributes struct {
	SpatialReferenceWKT string
	PlotResolutionM     float64
	TimezoneID          string
	DSTStart            time.Time
	DSTEnd              time.Time
}

// Engine is the external landscape/weather collaborator the engine
// samples every point against. Implementations are supplied by the host;
// nothing in this module implements Engine for production use.
type Engine interface {
	Sample(x, y float64, t time.Time) (Sample, error)
	Attributes() (Attributes, error)
}

// FBPOutputs is one FuelModel evaluation's results: the FBP engine's
// rate-of-spread, consumption, and intensity outputs for a single point.
type FBPOutputs struct {
	RSI   float64
	ROSEq float64
	ROS   float64
	BROS  float64
	FROS  float64
	RAZ   float64 // compass radians
	SFC   float64
	CFB   float64
	CFC   float64
	TFC   float64
	FI    float64
}

// FuelInputs bundles the per-fuel-type inputs a FuelModel evaluation needs.
type FuelInputs struct {
	FuelType   string
	Weather    Weather
	FWI        float64
	Moisture   float64
	Slope      float64
	Aspect     float64
	Overrides  map[string]float64
}

// FuelModel is the external per-fuel-type fire behavior collaborator
// (spec.md §6.1). Implementations are supplied by the host.
type FuelModel interface {
	Evaluate(in FuelInputs) (FBPOutputs, error)
	FlameLength(treeHeight, cfb, fi float64) float64
}
