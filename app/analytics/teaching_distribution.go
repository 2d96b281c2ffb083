package analytics

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
)

// TeachingDistribution sums weighted enrollment per instructor, heaviest
// load first.
type TeachingDistribution struct{}

func (*TeachingDistribution) Name() string { return "teaching-distribution" }

func (*TeachingDistribution) Title() string {
	return "Teaching Distribution By Weighted Enrollment"
}

func (*TeachingDistribution) Subtitle() string {
	return "Total weighted enrollment per instructor"
}

func (td *TeachingDistribution) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("teaching distribution query: %w", err)
	}

	totals := make(map[string]float64)
	for _, m := range meetings {
		totals[m.Instructor] += m.WeightedEnrollTotal
	}

	instructors := make([]string, 0, len(totals))
	for name := range totals {
		instructors = append(instructors, name)
	}
	sort.Slice(instructors, func(i, j int) bool {
		if totals[instructors[i]] != totals[instructors[j]] {
			return totals[instructors[i]] > totals[instructors[j]]
		}
		return instructors[i] < instructors[j]
	})

	rows := make([][]string, 0, len(instructors))
	values := make([]float64, 0, len(instructors))
	for _, name := range instructors {
		rows = append(rows, []string{name, fmt.Sprintf("%.1f", totals[name])})
		values = append(values, totals[name])
	}

	chart, err := chartHTML(newHorizontalBar(
		"Total Weighted Enrollment per Instructor",
		instructors, values, "Weighted Enrollment",
	))
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:     td.Name(),
		Title:    td.Title(),
		Subtitle: td.Subtitle(),
		Tables: []Table{{
			Title:   "Weighted Enrollment by Instructor",
			Columns: []string{"Instructor Name", "Total Weighted Enrollment"},
			Rows:    rows,
		}},
		Charts: []Chart{{Title: "Teaching Distribution Plot", HTML: chart}},
	}, nil
}
