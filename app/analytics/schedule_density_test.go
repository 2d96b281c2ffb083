package analytics

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

const fixtureSchema = `CREATE TABLE schedule (
	subject TEXT NOT NULL,
	catalog_number TEXT NOT NULL,
	fq_catalog_number TEXT NOT NULL,
	section TEXT NOT NULL,
	fq_class_section TEXT NOT NULL,
	class_title TEXT NOT NULL,
	instructor TEXT NOT NULL,
	enroll_total INTEGER NOT NULL,
	weighted_enroll_total REAL NOT NULL,
	weighted_sch_total INTEGER NOT NULL,
	meeting_pattern TEXT NOT NULL,
	trad_meeting_pattern TEXT NOT NULL,
	class_start_time TEXT NOT NULL,
	class_end_time TEXT NOT NULL,
	unit_class_duration INTEGER NOT NULL,
	instructional_time INTEGER NOT NULL,
	facility TEXT NOT NULL,
	combined_id TEXT NOT NULL
)`

type fixtureRow struct {
	catalog    string
	section    string
	instructor string
	enroll     int
	pattern    string
	start      string
	end        string
	facility   string
}

func openFixtureDB(t *testing.T, rows []fixtureRow) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO schedule VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			"COMP", r.catalog, "COMP-"+r.catalog, r.section, r.catalog+"-"+r.section,
			"Title "+r.catalog, r.instructor, r.enroll, float64(r.enroll), 3*r.enroll,
			r.pattern, r.pattern, r.start, r.end, 0, 0, r.facility,
			"("+r.instructor+","+r.facility+","+r.pattern+","+r.start+","+r.end+")",
		)
		require.NoError(t, err)
	}
	return db
}

func findMarker(markers []schedule.Marker, day string, minute int) (schedule.Marker, bool) {
	for _, m := range markers {
		if m.Day == day && m.Minute == minute {
			return m, true
		}
	}
	return schedule.Marker{}, false
}

func TestComputeDensity_OverlapScenario(t *testing.T) {
	t.Parallel()

	meetings := []models.CourseMeeting{
		{TradMeetingPattern: "M", ClassStartTime: "09:00:00", ClassEndTime: "10:00:00", FQClassSection: "141-001"},
		{TradMeetingPattern: "M", ClassStartTime: "09:30:00", ClassEndTime: "10:30:00", FQClassSection: "271-001"},
	}

	markers, issues := ComputeDensity(meetings, schedule.DefaultGridConfig())
	require.Empty(t, issues)
	require.Len(t, markers, 792)

	red, ok := findMarker(markers, "M", 580)
	require.True(t, ok)
	assert.Equal(t, 2, red.Overlaps)
	assert.Equal(t, schedule.SeverityRed, red.Color)

	orange, ok := findMarker(markers, "M", 610)
	require.True(t, ok)
	assert.Equal(t, 1, orange.Overlaps)
	assert.Equal(t, schedule.SeverityOrange, orange.Color)

	green, ok := findMarker(markers, "M", 700)
	require.True(t, ok)
	assert.Equal(t, 0, green.Overlaps)
	assert.Equal(t, schedule.SeverityGreen, green.Color)
}

func TestComputeDensity_BadRowsSkipped(t *testing.T) {
	t.Parallel()

	meetings := []models.CourseMeeting{
		{TradMeetingPattern: "Z", ClassStartTime: "09:00:00", ClassEndTime: "10:00:00", FQClassSection: "bad-001"},
		{TradMeetingPattern: "M", ClassStartTime: "09:00:00", ClassEndTime: "10:00:00", FQClassSection: "good-001"},
	}

	markers, issues := ComputeDensity(meetings, schedule.DefaultGridConfig())
	require.Len(t, issues, 1)
	assert.Equal(t, "bad-001", issues[0].Ref)

	m, ok := findMarker(markers, "M", 570)
	require.True(t, ok)
	assert.Equal(t, 1, m.Overlaps)
}

func TestScheduleDensity_Run(t *testing.T) {
	t.Parallel()

	db := openFixtureDB(t, []fixtureRow{
		{catalog: "141", section: "001", instructor: "Lovelace,Ada", enroll: 25, pattern: "MWF", start: "09:00:00", end: "10:15:00", facility: "Doyole Hall 210"},
		{catalog: "271", section: "001", instructor: "Hopper,Grace", enroll: 18, pattern: "TR", start: "13:00:00", end: "14:15:00", facility: "Doyole Hall 310"},
	})

	report := &ScheduleDensity{}
	result, err := report.Run(db, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "schedule-density", result.Name)
	require.Len(t, result.Charts, 1)
	assert.Contains(t, string(result.Charts[0].HTML), "echarts")
	assert.NotContains(t, result.Subtitle, "skipped")
}

func TestScheduleDensity_Run_ReportsSkippedRows(t *testing.T) {
	t.Parallel()

	db := openFixtureDB(t, []fixtureRow{
		{catalog: "141", section: "001", instructor: "Lovelace,Ada", enroll: 25, pattern: "MWF", start: "09:00:00", end: "10:15:00", facility: "Doyole Hall 210"},
		{catalog: "499", section: "001", instructor: "Hopper,Grace", enroll: 2, pattern: "Q", start: "13:00:00", end: "14:15:00", facility: "Doyole Hall 310"},
	})

	report := &ScheduleDensity{}

	options := DefaultOptions()
	options.Filters = nil

	result, err := report.Run(db, options)
	require.NoError(t, err)
	assert.True(t, strings.Contains(result.Subtitle, "1 rows skipped"), "subtitle: %s", result.Subtitle)
}

func TestScheduleDensity_EmptySchedule(t *testing.T) {
	t.Parallel()

	db := openFixtureDB(t, nil)

	result, err := (&ScheduleDensity{}).Run(db, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Charts, 1)

	markers, issues := ComputeDensity(nil, schedule.DefaultGridConfig())
	require.Empty(t, issues)
	for _, m := range markers {
		assert.Equal(t, schedule.SeverityGreen, m.Color)
	}
}
