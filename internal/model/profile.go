package model

// GCodeProfile defines a post-processor configuration for a wire cutting controller.
type GCodeProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	Units       string `json:"units"`       // "inches" or "mm"

	StartCode  []string `json:"start_code"`  // Commands at start of file
	WireOn     string   `json:"wire_on"`     // Wire power / tension on
	WireOff    string   `json:"wire_off"`    // Wire power off
	RapidMove  string   `json:"rapid_move"`  // G0 or equivalent
	FeedMove   string   `json:"feed_move"`   // G1 or equivalent
	EndCode    []string `json:"end_code"`    // Commands at end of file
	DwellCode  string   `json:"dwell_code"`  // Dwell command with %g seconds, empty to skip
	UnitsCode  string   `json:"units_code"`  // G20 / G21
	FeedFormat string   `json:"feed_format"` // e.g. "F%.1f"

	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")")

	DecimalPlaces int `json:"decimal_places"` // Number of decimal places for coordinates
}

// Built-in wire cutter profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl hot-wire / wire saw controller",
		Units:         "inches",
		StartCode:     []string{"G90", "G17"},
		WireOn:        "M3 S1000",
		WireOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 X0 Y[Clear]", "M2"},
		DwellCode:     "G4 P%g",
		UnitsCode:     "G20",
		FeedFormat:    "F%.1f",
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC with a two-axis wire carriage",
		Units:         "inches",
		StartCode:     []string{"G90", "G17", "G94"},
		WireOn:        "M3",
		WireOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 X0 Y[Clear]", "M30"},
		DwellCode:     "G4 P%g",
		UnitsCode:     "G20",
		FeedFormat:    "F%.2f",
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		Units:         "inches",
		StartCode:     []string{"G90"},
		WireOn:        "M3",
		WireOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 X0 Y[Clear]", "M2"},
		UnitsCode:     "G20",
		FeedFormat:    "F%.1f",
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1] // Generic
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}

// IsBuiltInProfile reports whether name belongs to a shipped profile.
func IsBuiltInProfile(name string) bool {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return true
		}
	}
	return false
}
