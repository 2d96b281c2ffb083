package analytics

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

// ScheduleDensity computes how many classes are in session simultaneously
// at every grid point of the week and renders the overlap map.
type ScheduleDensity struct{}

func (*ScheduleDensity) Name() string  { return "schedule-density" }
func (*ScheduleDensity) Title() string { return "Schedule Density" }

func (*ScheduleDensity) Subtitle() string {
	return "Display the density of courses within the schedule"
}

// ComputeDensity builds fresh per-day interval indexes from the meetings
// and walks the density grid. Returned issues identify rows skipped for bad
// patterns or times.
func ComputeDensity(meetings []models.CourseMeeting, cfg schedule.GridConfig) ([]schedule.Marker, []schedule.RowIssue) {
	records := make([]schedule.Meeting, 0, len(meetings))
	for _, m := range meetings {
		records = append(records, schedule.Meeting{
			Pattern:   m.TradMeetingPattern,
			StartTime: m.ClassStartTime,
			EndTime:   m.ClassEndTime,
			Ref:       m.FQClassSection,
		})
	}

	idx, issues := schedule.BuildDayIndex(records)
	return schedule.BuildGrid(idx, cfg), issues
}

func (sd *ScheduleDensity) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("schedule density query: %w", err)
	}

	markers, issues := ComputeDensity(meetings, options.Grid)

	chart, err := chartHTML(densityScatter(markers, options.Grid))
	if err != nil {
		return nil, err
	}

	subtitle := sd.Subtitle()
	if len(issues) > 0 {
		subtitle = fmt.Sprintf("%s (%d rows skipped)", subtitle, len(issues))
	}

	return &Result{
		Name:     sd.Name(),
		Title:    sd.Title(),
		Subtitle: subtitle,
		Charts: []Chart{{
			Title: fmt.Sprintf("Schedule Density (overlap threshold %d)", options.Grid.OverlapThreshold),
			HTML:  chart,
		}},
	}, nil
}

// RenderDensityPage writes the density chart as a complete standalone HTML
// page, for the command-line renderer.
func RenderDensityPage(w io.Writer, markers []schedule.Marker, cfg schedule.GridConfig) error {
	return densityScatter(markers, cfg).Render(w)
}

var severityColors = map[string]string{
	schedule.SeverityGreen:  "#2e7d32",
	schedule.SeverityOrange: "#ef6c00",
	schedule.SeverityRed:    "#c62828",
}

// densityScatter plots one point per grid cell, sized by overlap count and
// colored by severity band.
func densityScatter(markers []schedule.Marker, cfg schedule.GridConfig) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Schedule Density",
			Subtitle: fmt.Sprintf("Overlap threshold = %d", cfg.OverlapThreshold),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "480px"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Minutes since midnight",
			Type: "value",
			Min:  cfg.StartHour * 60,
			Max:  cfg.EndHour * 60,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Day of the week",
			Type: "category",
			Data: schedule.Days,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	series := map[string][]opts.ScatterData{}
	for _, m := range markers {
		series[m.Color] = append(series[m.Color], opts.ScatterData{
			Value:      []any{m.Minute, m.DayIndex, m.Overlaps},
			SymbolSize: m.Size,
		})
	}

	// Fixed series order keeps re-renders byte-identical.
	for _, severity := range []string{schedule.SeverityGreen, schedule.SeverityOrange, schedule.SeverityRed} {
		data := series[severity]
		if len(data) == 0 {
			continue
		}
		scatter.AddSeries(severity, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: severityColors[severity]}),
		)
	}

	return scatter
}
