package sim

// ScheduleConfig is the read/write configuration surface of a generator's
// rate schedule. On writes, field presence is explicit: a nil slice means
// "not supplied" while an empty non-nil slice means "supplied and empty"
// (which preserves the existing schedule). AllowOffgridTimes follows the
// same convention through its pointer.
type ScheduleConfig struct {
	// RateTimes holds breakpoint times as continuous instants in ms.
	RateTimes []float64 `yaml:"rate_times"`
	// RateValues holds the rate taking effect at each time, in events/s.
	RateValues []float64 `yaml:"rate_values"`
	// AllowOffgridTimes selects the alignment policy: false rejects times
	// off the step grid, true rounds them up to the end of their step.
	AllowOffgridTimes *bool `yaml:"allow_offgrid_times,omitempty"`
}
