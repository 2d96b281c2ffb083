package schedule

import "fmt"

// Severity colors for a grid point.
const (
	SeverityGreen  = "green"
	SeverityOrange = "orange"
	SeverityRed    = "red"
)

// Meeting is the course-meeting record the density core consumes. Upstream
// filtering (departments, enrollment rules) already happened; only the
// pattern and times matter here. Ref identifies the row in diagnostics.
type Meeting struct {
	Pattern   string
	StartTime string
	EndTime   string
	Ref       string
}

// RowIssue records one meeting that was skipped during index construction.
type RowIssue struct {
	Ref string
	Err error
}

func (i RowIssue) String() string {
	return fmt.Sprintf("%s: %v", i.Ref, i.Err)
}

// GridConfig carries the density-grid policy constants. The 08:00-19:00
// window and 5-minute step match the institution's scheduling day but are
// configuration, not structure.
type GridConfig struct {
	StartHour        int
	EndHour          int
	StepMinutes      int
	OverlapThreshold int
	BaseMarkerSize   int
	MarkerSizeStep   int
}

// DefaultGridConfig returns the stock reporting window: 08:00-19:00 in
// 5-minute steps with an overlap threshold of 2.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		StartHour:        8,
		EndHour:          19,
		StepMinutes:      5,
		OverlapThreshold: 2,
		BaseMarkerSize:   5,
		MarkerSizeStep:   4,
	}
}

// Sanitize clamps out-of-range grid values back to the stock defaults.
// Overrides arrive from query parameters and the environment; a zero or
// negative step would otherwise never advance the sampling loop.
func (cfg GridConfig) Sanitize() GridConfig {
	def := DefaultGridConfig()
	if cfg.StepMinutes <= 0 || cfg.StepMinutes > 60 {
		cfg.StepMinutes = def.StepMinutes
	}
	if cfg.StartHour < 0 || cfg.StartHour > 23 {
		cfg.StartHour = def.StartHour
	}
	if cfg.EndHour <= cfg.StartHour || cfg.EndHour > 24 {
		cfg.StartHour = def.StartHour
		cfg.EndHour = def.EndHour
	}
	if cfg.OverlapThreshold < 1 {
		cfg.OverlapThreshold = def.OverlapThreshold
	}
	if cfg.BaseMarkerSize <= 0 {
		cfg.BaseMarkerSize = def.BaseMarkerSize
	}
	if cfg.MarkerSizeStep <= 0 {
		cfg.MarkerSizeStep = def.MarkerSizeStep
	}
	return cfg
}

// Timeslots returns every sampled minute offset in the window, half-open at
// the end hour.
func (cfg GridConfig) Timeslots() []int {
	cfg = cfg.Sanitize()

	var slots []int
	for hour := cfg.StartHour; hour < cfg.EndHour; hour++ {
		for minute := 0; minute < 60; minute += cfg.StepMinutes {
			slots = append(slots, hour*60+minute)
		}
	}
	return slots
}

// HourTicks returns the hourly axis tick positions and their HH:MM labels.
func (cfg GridConfig) HourTicks() ([]int, []string) {
	cfg = cfg.Sanitize()

	var ticks []int
	var labels []string
	for hour := cfg.StartHour; hour < cfg.EndHour; hour++ {
		ticks = append(ticks, hour*60)
		labels = append(labels, fmt.Sprintf("%02d:00", hour))
	}
	return ticks, labels
}

// Marker is one classified grid point.
type Marker struct {
	Minute   int    `json:"minute"`
	Day      string `json:"day"`
	DayIndex int    `json:"day_index"`
	Overlaps int    `json:"overlaps"`
	Color    string `json:"color"`
	Size     int    `json:"size"`
}

// BuildDayIndex parses each meeting's pattern and times and inserts one
// interval per meeting day. Bad rows are collected as issues and skipped so
// one dirty row cannot blank the whole report. Zero-duration meetings are
// skipped silently.
func BuildDayIndex(meetings []Meeting) (DayIndex, []RowIssue) {
	idx := NewDayIndex()

	var issues []RowIssue
	for _, m := range meetings {
		days, err := ParseMeetingPattern(m.Pattern)
		if err != nil {
			issues = append(issues, RowIssue{Ref: m.Ref, Err: err})
			continue
		}
		if len(days) == 0 {
			continue
		}

		iv, ok, err := BuildInterval(m.StartTime, m.EndTime)
		if err != nil {
			issues = append(issues, RowIssue{Ref: m.Ref, Err: err})
			continue
		}
		if !ok {
			continue
		}

		for _, day := range days {
			tree, indexed := idx[day]
			if !indexed {
				// Sunday placeholder: excluded from the grid.
				continue
			}
			tree.Insert(iv)
		}
	}

	return idx, issues
}

// BuildGrid queries each day's tree at every timeslot and classifies the
// overlap count into a severity band. Output is day-major in Days order,
// then timeslot order: one marker per cell, every cell present.
func BuildGrid(idx DayIndex, cfg GridConfig) []Marker {
	cfg = cfg.Sanitize()
	slots := cfg.Timeslots()
	markers := make([]Marker, 0, len(Days)*len(slots))

	for dayIdx, day := range Days {
		tree := idx[day]
		for _, minute := range slots {
			count := 0
			if tree != nil {
				count = tree.StabCount(minute)
			}

			color := SeverityGreen
			switch {
			case count >= cfg.OverlapThreshold:
				color = SeverityRed
			case count > 0:
				color = SeverityOrange
			}

			markers = append(markers, Marker{
				Minute:   minute,
				Day:      day,
				DayIndex: dayIdx,
				Overlaps: count,
				Color:    color,
				Size:     cfg.BaseMarkerSize + cfg.MarkerSizeStep*count,
			})
		}
	}

	return markers
}
