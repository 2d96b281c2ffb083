package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerAt(t *testing.T, markers []Marker, day string, minute int) Marker {
	t.Helper()
	for _, m := range markers {
		if m.Day == day && m.Minute == minute {
			return m
		}
	}
	t.Fatalf("no marker for day %s minute %d", day, minute)
	return Marker{}
}

func TestBuildDayIndex_PatternFanout(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "MWF", StartTime: "09:00:00", EndTime: "10:15:00", Ref: "COMP-141-001"},
	})
	require.Empty(t, issues)

	for _, day := range []string{"M", "W", "F"} {
		require.Equal(t, 1, idx[day].Len(), "day %s", day)
		assert.Equal(t, []Interval{{Begin: 540, End: 615}}, idx[day].Stab(540))
	}
	assert.Zero(t, idx["T"].Len())
	assert.Zero(t, idx["R"].Len())
	assert.Zero(t, idx["S"].Len())
}

func TestBuildDayIndex_EmptyPattern(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "", StartTime: "09:00:00", EndTime: "10:00:00"},
		{Pattern: NoMeetingPattern, StartTime: "09:00:00", EndTime: "10:00:00"},
	})
	require.Empty(t, issues)
	assert.Zero(t, idx.Len())
}

func TestBuildDayIndex_ZeroDurationSkipped(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "MWF", StartTime: "09:00:00", EndTime: "09:00:00"},
	})
	require.Empty(t, issues)
	assert.Zero(t, idx.Len())
}

func TestBuildDayIndex_CollectsIssuesAndContinues(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "Z", StartTime: "09:00:00", EndTime: "10:00:00", Ref: "bad-pattern"},
		{Pattern: "M", StartTime: "garbled", EndTime: "10:00:00", Ref: "bad-time"},
		{Pattern: "M", StartTime: "09:00:00", EndTime: "10:00:00", Ref: "good"},
	})

	require.Len(t, issues, 2)
	assert.Equal(t, "bad-pattern", issues[0].Ref)

	var malformed *MalformedPatternError
	assert.ErrorAs(t, issues[0].Err, &malformed)

	var invalid *InvalidTimeError
	assert.ErrorAs(t, issues[1].Err, &invalid)

	assert.Equal(t, 1, idx["M"].Len())
}

func TestBuildDayIndex_SundayExcluded(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "SU", StartTime: "09:00:00", EndTime: "10:00:00"},
	})
	require.Empty(t, issues)
	assert.Zero(t, idx.Len())
}

func TestBuildGrid_SeverityBands(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex([]Meeting{
		{Pattern: "M", StartTime: "09:00:00", EndTime: "10:00:00"},
		{Pattern: "M", StartTime: "09:30:00", EndTime: "10:30:00"},
	})
	require.Empty(t, issues)

	cfg := DefaultGridConfig()
	markers := BuildGrid(idx, cfg)
	require.Len(t, markers, 6*132)

	red := markerAt(t, markers, "M", 580) // 09:40
	assert.Equal(t, 2, red.Overlaps)
	assert.Equal(t, SeverityRed, red.Color)
	assert.Equal(t, cfg.BaseMarkerSize+2*cfg.MarkerSizeStep, red.Size)

	orange := markerAt(t, markers, "M", 610) // 10:10
	assert.Equal(t, 1, orange.Overlaps)
	assert.Equal(t, SeverityOrange, orange.Color)

	green := markerAt(t, markers, "M", 700) // 11:40
	assert.Equal(t, 0, green.Overlaps)
	assert.Equal(t, SeverityGreen, green.Color)
}

func TestBuildGrid_EmptyScheduleAllGreen(t *testing.T) {
	t.Parallel()

	idx, issues := BuildDayIndex(nil)
	require.Empty(t, issues)

	markers := BuildGrid(idx, DefaultGridConfig())
	require.Len(t, markers, 6*132)
	for _, m := range markers {
		assert.Equal(t, SeverityGreen, m.Color)
		assert.Zero(t, m.Overlaps)
	}
}

func TestBuildGrid_Deterministic(t *testing.T) {
	t.Parallel()

	meetings := []Meeting{
		{Pattern: "MWF", StartTime: "09:00:00", EndTime: "10:15:00"},
		{Pattern: "TR", StartTime: "13:00:00", EndTime: "14:15:00"},
		{Pattern: "M", StartTime: "09:30:00", EndTime: "10:30:00"},
	}

	first, _ := BuildDayIndex(meetings)
	second, _ := BuildDayIndex(meetings)

	assert.Equal(t, BuildGrid(first, DefaultGridConfig()), BuildGrid(second, DefaultGridConfig()))
}

func TestBuildGrid_OneMarkerPerCell(t *testing.T) {
	t.Parallel()

	idx, _ := BuildDayIndex(nil)
	markers := BuildGrid(idx, DefaultGridConfig())

	seen := make(map[[2]int]bool, len(markers))
	for _, m := range markers {
		key := [2]int{m.DayIndex, m.Minute}
		assert.False(t, seen[key], "duplicate marker for %v", key)
		seen[key] = true
	}
}

func TestGridConfig_Timeslots(t *testing.T) {
	t.Parallel()

	cfg := DefaultGridConfig()
	slots := cfg.Timeslots()
	require.Len(t, slots, 132)
	assert.Equal(t, 8*60, slots[0])
	assert.Equal(t, 18*60+55, slots[len(slots)-1])
}

func TestGridConfig_HourTicks(t *testing.T) {
	t.Parallel()

	ticks, labels := DefaultGridConfig().HourTicks()
	require.Len(t, ticks, 11)
	require.Len(t, labels, 11)
	assert.Equal(t, 480, ticks[0])
	assert.Equal(t, "08:00", labels[0])
	assert.Equal(t, "18:00", labels[10])
}

func TestBuildGrid_ThresholdConfigurable(t *testing.T) {
	t.Parallel()

	idx, _ := BuildDayIndex([]Meeting{
		{Pattern: "M", StartTime: "09:00:00", EndTime: "10:00:00"},
	})

	cfg := DefaultGridConfig()
	cfg.OverlapThreshold = 1

	m := markerAt(t, BuildGrid(idx, cfg), "M", 570)
	assert.Equal(t, SeverityRed, m.Color)
}

func TestGridConfig_SanitizeClampsBadValues(t *testing.T) {
	t.Parallel()

	def := DefaultGridConfig()

	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"zero step", GridConfig{StartHour: 8, EndHour: 19, StepMinutes: 0, OverlapThreshold: 2, BaseMarkerSize: 5, MarkerSizeStep: 4}},
		{"negative step", GridConfig{StartHour: 8, EndHour: 19, StepMinutes: -5, OverlapThreshold: 2, BaseMarkerSize: 5, MarkerSizeStep: 4}},
		{"inverted window", GridConfig{StartHour: 19, EndHour: 8, StepMinutes: 5, OverlapThreshold: 2, BaseMarkerSize: 5, MarkerSizeStep: 4}},
		{"zero threshold", GridConfig{StartHour: 8, EndHour: 19, StepMinutes: 5, OverlapThreshold: 0, BaseMarkerSize: 5, MarkerSizeStep: 4}},
		{"all zero", GridConfig{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.cfg.Sanitize()
			assert.Greater(t, got.StepMinutes, 0)
			assert.Greater(t, got.EndHour, got.StartHour)
			assert.GreaterOrEqual(t, got.OverlapThreshold, 1)
		})
	}

	assert.Equal(t, def, GridConfig{}.Sanitize())
	assert.Equal(t, def, def.Sanitize())
}

func TestGridConfig_TimeslotsTerminatesOnZeroStep(t *testing.T) {
	t.Parallel()

	cfg := DefaultGridConfig()
	cfg.StepMinutes = 0

	slots := cfg.Timeslots()
	require.Len(t, slots, 132)
	assert.Equal(t, 480, slots[0])
}

func TestBuildGrid_SanitizesConfig(t *testing.T) {
	t.Parallel()

	idx, _ := BuildDayIndex([]Meeting{
		{Pattern: "M", StartTime: "09:00:00", EndTime: "10:00:00"},
	})

	markers := BuildGrid(idx, GridConfig{StepMinutes: -1})
	require.Len(t, markers, 792)

	m := markerAt(t, markers, "M", 570)
	assert.Equal(t, SeverityOrange, m.Color)
}
