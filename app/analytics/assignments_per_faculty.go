package analytics

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
)

// AssignmentsPerFaculty counts course assignments per instructor.
type AssignmentsPerFaculty struct{}

func (*AssignmentsPerFaculty) Name() string  { return "assignments-per-faculty" }
func (*AssignmentsPerFaculty) Title() string { return "Number of Assignments Per Faculty Member" }

func (*AssignmentsPerFaculty) Subtitle() string {
	return "The number of courses that are assigned to each faculty member for the current term"
}

func (apf *AssignmentsPerFaculty) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("assignments per faculty query: %w", err)
	}

	counts := make(map[string]int)
	for _, m := range meetings {
		if m.Instructor == "UNKNOWN" {
			continue
		}
		counts[m.Instructor]++
	}

	instructors := make([]string, 0, len(counts))
	for name := range counts {
		instructors = append(instructors, name)
	}
	sort.Slice(instructors, func(i, j int) bool {
		if counts[instructors[i]] != counts[instructors[j]] {
			return counts[instructors[i]] > counts[instructors[j]]
		}
		return instructors[i] < instructors[j]
	})

	rows := make([][]string, 0, len(instructors))
	values := make([]float64, 0, len(instructors))
	for _, name := range instructors {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
		values = append(values, float64(counts[name]))
	}

	chart, err := chartHTML(newHorizontalBar(
		"Number of Assignments per Instructor", instructors, values, "Courses",
	))
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:     apf.Name(),
		Title:    apf.Title(),
		Subtitle: apf.Subtitle(),
		Tables: []Table{{
			Title:   "Faculty Assignment Count",
			Columns: []string{"Instructor Name", "Number of Courses"},
			Rows:    rows,
		}},
		Charts: []Chart{{Title: "Faculty Assignment Count Plot", HTML: chart}},
	}, nil
}
