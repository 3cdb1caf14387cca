package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultPlateCount   int     `json:"default_plate_count"`
	DefaultPlateHeight  float64 `json:"default_plate_height"`
	DefaultPlateWidth   float64 `json:"default_plate_width"`
	DefaultMinHeight    float64 `json:"default_min_height"`
	DefaultMaxHeight    float64 `json:"default_max_height"`
	DefaultOriginSide   string  `json:"default_origin_side"` // "top", "bottom"
	DefaultFrame        string  `json:"default_frame"`       // "full-stack", "single-plate"
	DefaultStrategy     string  `json:"default_strategy"`    // "width-average", "edge-sampling"
	DefaultGCodeProfile string  `json:"default_gcode_profile"`

	// Wire machine
	FeedRate float64 `json:"feed_rate"` // in/min along the stack

	// Application preferences
	FrameDelayMillis int      `json:"frame_delay_millis"` // animation pacing
	RecentExports    []string `json:"recent_exports"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultJob().
func DefaultAppConfig() AppConfig {
	job := DefaultJob()
	return AppConfig{
		DefaultPlateCount:   job.Stack.PlateCount,
		DefaultPlateHeight:  job.Stack.PlateHeight,
		DefaultPlateWidth:   job.Stack.PlateWidth,
		DefaultMinHeight:    job.Tolerance.MinHeight,
		DefaultMaxHeight:    job.Tolerance.MaxHeight,
		DefaultOriginSide:   job.Wire.OriginSide.String(),
		DefaultFrame:        job.Frame.String(),
		DefaultStrategy:     job.Strategy.String(),
		DefaultGCodeProfile: "Generic",
		FeedRate:            20.0,
		FrameDelayMillis:    30,
		RecentExports:       []string{},
		Theme:               "system",
	}
}

// ApplyToJob copies the default values from AppConfig into a Job.
// Unparseable enum strings leave the job's current value in place.
func (c AppConfig) ApplyToJob(j *Job) {
	j.Stack.PlateCount = c.DefaultPlateCount
	j.Stack.PlateHeight = c.DefaultPlateHeight
	j.Stack.PlateWidth = c.DefaultPlateWidth
	j.Tolerance.MinHeight = c.DefaultMinHeight
	j.Tolerance.MaxHeight = c.DefaultMaxHeight
	if side, err := ParseOriginSide(c.DefaultOriginSide); err == nil {
		j.Wire.OriginSide = side
	}
	if frame, err := ParseFrame(c.DefaultFrame); err == nil {
		j.Frame = frame
	}
	if strategy, err := ParseStrategy(c.DefaultStrategy); err == nil {
		j.Strategy = strategy
	}
}
