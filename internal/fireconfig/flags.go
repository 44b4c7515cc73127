// Package fireconfig holds the scenario configuration surface: the boolean
// feature flags and numeric tuning values recognized by a scenario, and
// their defaults. The schema mirrors the flag names a host configuration
// file or API request would use, the way internal/config/tuning.go's
// TuningConfig schema matched the /api/lidar/params endpoint.
package fireconfig

import "github.com/wise-wildfire/firegrowth/internal/fireerrors"

// Flags holds every boolean feature switch recognized by a scenario.
// Zero value is "everything off", which matches the engine's conservative
// default behavior (no wind/topography coupling, no boundary stop, single
// threaded, no caching) until a caller opts in.
type Flags struct {
	Topography   bool // TOPOGRAPHY: couple ellipse orientation to slope/aspect.
	FMCTerrain   bool // FMC_TERRAIN: derive foliar moisture content from terrain.
	Wind         bool // WIND: couple ellipse orientation/shape to wind.
	Extinguishment bool // EXTINGUISHMENT: honor extinguishment events.
	Use2DGrowth  bool // USE_2DGROWTH: 2-D sub-stepping instead of 3-D.
	BoundaryStop bool // BOUNDARY_STOP: terminate on reaching grid extents.
	Spotting     bool // SPOTTING: enable spot-fire ignition.
	Breaching    bool // BREACHING: allow firebreak breach per VectorEngine rules.

	SpatialThresholdDynamic bool // SPATIAL_THRESHOLD_DYNAMIC: scale threshold with front size.
	SingleThreading         bool // SINGLETHREADING: force sequential propagation, no worker pool.

	WeatherInterpolateTemporal bool // WEATHER_INTERPOLATE_TEMPORAL
	WeatherInterpolateSpatial  bool // WEATHER_INTERPOLATE_SPATIAL
	WeatherInterpolatePrecip   bool // WEATHER_INTERPOLATE_PRECIP
	WeatherInterpolateWind     bool // WEATHER_INTERPOLATE_WIND
	WeatherInterpolateWindVector bool // WEATHER_INTERPOLATE_WIND_VECTOR
	WeatherInterpolateTempRH   bool // WEATHER_INTERPOLATE_TEMP_RH
	WeatherInterpolateCalcFWI  bool // WEATHER_INTERPOLATE_CALCFWI
	WeatherInterpolateHistory  bool // WEATHER_INTERPOLATE_HISTORY

	AccurateFMCLocation          bool // ACCURATE_FMC_LOCATION
	PurgeNonDisplayable          bool // PURGE_NONDISPLAYABLE
	CacheGridPoints              bool // CACHE_GRID_POINTS: wrap GridSampler in a CachingSampler.
	SuppressTightConcaveAddPoint bool // SUPPRESS_TIGHT_CONCAVE_ADDPOINT
	FalseOrigin                  bool // FALSE_ORIGIN
	FalseScaling                  bool // FALSE_SCALING
}

// DefaultFlags returns every flag at its conservative off-by-default value.
func DefaultFlags() Flags { return Flags{} }

// Numeric holds every numeric tuning value recognized by a scenario,
// alongside the boolean Flags. Fields use pointers where "unset" must be
// distinguishable from the zero value, following the is-this-set pattern
// used by internal/config/tuning.go's TuningConfig.
type Numeric struct {
	Multithreading         *int     // MULTITHREADING: worker count; 0/1 or SingleThreading forces sequential.
	PerimeterResolution    *float64 // PERIMETER_RESOLUTION: target max vertex spacing, metres.
	PerimeterSpacing       *float64 // PERIMETER_SPACING: minimum vertex spacing before coalescing, metres.
	SpatialThreshold       *float64 // SPATIAL_THRESHOLD: max per-substep point travel, metres.
	MinimumSpreadingROS    *float64 // MINIMUM_SPREADING_ROS: below this, a point is marked no_ros.
	SpecifiedFMC           *float64 // SPECIFIED_FMC: override foliar moisture content, percent.
	DefaultElevation       *float64 // DEFAULT_ELEVATION: metres, used when the grid has no DEM coverage.
	IgnitionSize           *float64 // IGNITION_SIZE: default point-ignition radius, metres.
	StartTimeUnixSeconds   *int64   // START_TIME
	EndTimeUnixSeconds     *int64   // END_TIME
	DisplayIntervalSeconds *float64 // DISPLAY_INTERVAL
	TemporalThresholdAccel *float64 // TEMPORAL_THRESHOLD_ACCEL: seconds before threshold is relaxed.

	IgnitionsDX *float64 // IGNITIONS_DX
	IgnitionsDY *float64 // IGNITIONS_DY
	IgnitionsDT *float64 // IGNITIONS_DT
	IgnitionsDWD *float64 // IGNITIONS_DWD
	IgnitionsOWD *float64 // IGNITIONS_OWD

	IgnitionsPercentile       *float64 // IGNITIONS_PERCENTILE
	IgnitionsPercentileEnable bool     // IGNITIONS_PERCENTILE_ENABLE

	GridDecimation *float64 // GRID_DECIMATION
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultNumeric returns the documented defaults for every numeric tuning
// value, matching the original implementation's built-in defaults where
// the specification does not otherwise constrain them.
func DefaultNumeric() Numeric {
	return Numeric{
		Multithreading:         ptrInt(0),
		PerimeterResolution:    ptrFloat64(1.0),
		PerimeterSpacing:       ptrFloat64(0.2),
		SpatialThreshold:       ptrFloat64(1.0),
		MinimumSpreadingROS:    ptrFloat64(0.0),
		SpecifiedFMC:           nil,
		DefaultElevation:       ptrFloat64(0.0),
		IgnitionSize:           ptrFloat64(0.0),
		DisplayIntervalSeconds: ptrFloat64(3600.0),
		TemporalThresholdAccel: ptrFloat64(0.0),
		GridDecimation:         ptrFloat64(0.0),
	}
}

// GetMultithreading returns the configured worker count, or 1 (sequential)
// if unset.
func (n Numeric) GetMultithreading() int {
	if n.Multithreading == nil {
		return 1
	}
	return *n.Multithreading
}

// GetPerimeterResolution returns the configured vertex spacing, or 1.0m if
// unset.
func (n Numeric) GetPerimeterResolution() float64 {
	if n.PerimeterResolution == nil {
		return 1.0
	}
	return *n.PerimeterResolution
}

// GetSpatialThreshold returns the configured per-substep travel budget, or
// 1.0m if unset.
func (n Numeric) GetSpatialThreshold() float64 {
	if n.SpatialThreshold == nil {
		return 1.0
	}
	return *n.SpatialThreshold
}

// GetPerimeterSpacing returns the configured minimum vertex spacing before
// coalescing, or 0.2m if unset.
func (n Numeric) GetPerimeterSpacing() float64 {
	if n.PerimeterSpacing == nil {
		return 0.2
	}
	return *n.PerimeterSpacing
}

// GetMinimumSpreadingROS returns the configured no-spread floor, or 0 if
// unset.
func (n Numeric) GetMinimumSpreadingROS() float64 {
	if n.MinimumSpreadingROS == nil {
		return 0.0
	}
	return *n.MinimumSpreadingROS
}

// GetDisplayIntervalSeconds returns the configured display interval, or
// 3600s if unset.
func (n Numeric) GetDisplayIntervalSeconds() float64 {
	if n.DisplayIntervalSeconds == nil {
		return 3600.0
	}
	return *n.DisplayIntervalSeconds
}

// Validate reports every malformed numeric value via a
// fireerrors.ValidationCollector rather than failing on the first one, so a
// caller building a scenario from a form or file sees every problem at once.
func (n Numeric) Validate() error {
	v := fireerrors.NewValidationCollector("fireconfig.Numeric")
	if n.Multithreading != nil {
		v.Checkf(*n.Multithreading >= 0, "MULTITHREADING must be non-negative, got %d", *n.Multithreading)
	}
	if n.PerimeterResolution != nil {
		v.Checkf(*n.PerimeterResolution > 0, "PERIMETER_RESOLUTION must be positive, got %f", *n.PerimeterResolution)
	}
	if n.PerimeterSpacing != nil {
		v.Checkf(*n.PerimeterSpacing > 0, "PERIMETER_SPACING must be positive, got %f", *n.PerimeterSpacing)
	}
	if n.PerimeterResolution != nil && n.PerimeterSpacing != nil {
		v.Checkf(*n.PerimeterSpacing < *n.PerimeterResolution, "PERIMETER_SPACING (%f) must be less than PERIMETER_RESOLUTION (%f)", *n.PerimeterSpacing, *n.PerimeterResolution)
	}
	if n.SpatialThreshold != nil {
		v.Checkf(*n.SpatialThreshold > 0, "SPATIAL_THRESHOLD must be positive, got %f", *n.SpatialThreshold)
	}
	if n.MinimumSpreadingROS != nil {
		v.Checkf(*n.MinimumSpreadingROS >= 0, "MINIMUM_SPREADING_ROS must be non-negative, got %f", *n.MinimumSpreadingROS)
	}
	if n.IgnitionSize != nil {
		v.Checkf(*n.IgnitionSize >= 0, "IGNITION_SIZE must be non-negative, got %f", *n.IgnitionSize)
	}
	if n.DisplayIntervalSeconds != nil {
		v.Checkf(*n.DisplayIntervalSeconds > 0, "DISPLAY_INTERVAL must be positive, got %f", *n.DisplayIntervalSeconds)
	}
	if n.StartTimeUnixSeconds != nil && n.EndTimeUnixSeconds != nil {
		v.Checkf(*n.EndTimeUnixSeconds > *n.StartTimeUnixSeconds, "END_TIME (%d) must be after START_TIME (%d)", *n.EndTimeUnixSeconds, *n.StartTimeUnixSeconds)
	}
	if n.TemporalThresholdAccel != nil {
		v.Checkf(*n.TemporalThresholdAccel >= 0, "TEMPORAL_THRESHOLD_ACCEL must be non-negative, got %f", *n.TemporalThresholdAccel)
	}
	if n.IgnitionsPercentile != nil {
		v.Checkf(*n.IgnitionsPercentile >= 0 && *n.IgnitionsPercentile <= 100,
			"IGNITIONS_PERCENTILE must be in [0, 100], got %f", *n.IgnitionsPercentile)
	}
	if n.GridDecimation != nil {
		v.Checkf(*n.GridDecimation >= 0, "GRID_DECIMATION must be non-negative, got %f", *n.GridDecimation)
	}
	return v.Err()
}
