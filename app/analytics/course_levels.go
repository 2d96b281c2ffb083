package analytics

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
)

// SchoolCreditHours sums enrollment and weighted enrollment per course
// level (100, 200, ...).
type SchoolCreditHours struct{}

func (*SchoolCreditHours) Name() string  { return "school-credit-hours" }
func (*SchoolCreditHours) Title() string { return "School Credit Hours" }

func (*SchoolCreditHours) Subtitle() string {
	return "Sum of Course Enrollment and Weighted Enrollment"
}

func (sch *SchoolCreditHours) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("credit hours query: %w", err)
	}

	enrollByLevel := make(map[int]int)
	weightedByLevel := make(map[int]float64)
	for _, m := range meetings {
		level := m.CourseLevel()
		enrollByLevel[level] += m.EnrollTotal
		weightedByLevel[level] += m.WeightedEnrollTotal
	}

	levels := make([]int, 0, len(enrollByLevel))
	for level := range enrollByLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	rows := make([][]string, 0, len(levels))
	categories := make([]string, 0, len(levels))
	enrollSeries := make([]float64, 0, len(levels))
	weightedSeries := make([]float64, 0, len(levels))
	for _, level := range levels {
		rows = append(rows, []string{
			strconv.Itoa(level),
			strconv.Itoa(enrollByLevel[level]),
			fmt.Sprintf("%.1f", weightedByLevel[level]),
		})
		categories = append(categories, strconv.Itoa(level))
		enrollSeries = append(enrollSeries, float64(enrollByLevel[level]))
		weightedSeries = append(weightedSeries, weightedByLevel[level])
	}

	chart, err := chartHTML(newGroupedBar(
		"Enrollment by Course Level",
		categories,
		map[string][]float64{
			"Enroll Total":          enrollSeries,
			"Weighted Enroll Total": weightedSeries,
		},
		[]string{"Enroll Total", "Weighted Enroll Total"},
	))
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:     sch.Name(),
		Title:    sch.Title(),
		Subtitle: sch.Subtitle(),
		Tables: []Table{{
			Title:   "Total Enrollment by Course Level",
			Columns: []string{"Course Level", "Enroll Total", "Weighted Enroll Total"},
			Rows:    rows,
		}},
		Charts: []Chart{{Title: "Enrollment by Course Level", HTML: chart}},
	}, nil
}

// EnrollmentByCourseLevel plots weighted enrollment per course within each
// hundred-level, one chart per level.
type EnrollmentByCourseLevel struct{}

func (*EnrollmentByCourseLevel) Name() string     { return "enrollment-by-course-level" }
func (*EnrollmentByCourseLevel) Title() string    { return "Enrollment by course level" }
func (*EnrollmentByCourseLevel) Subtitle() string { return "Enrollment by course level" }

func (ebcl *EnrollmentByCourseLevel) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("enrollment by level query: %w", err)
	}

	byLevel := make(map[int]map[string]float64)
	for _, m := range meetings {
		level := m.CourseLevel()
		if byLevel[level] == nil {
			byLevel[level] = make(map[string]float64)
		}
		byLevel[level][m.FQCatalogNumber] += m.WeightedEnrollTotal
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var resultCharts []Chart
	for _, level := range levels {
		perCourse := byLevel[level]

		courses := make([]string, 0, len(perCourse))
		for course := range perCourse {
			courses = append(courses, course)
		}
		sort.Slice(courses, func(i, j int) bool {
			if perCourse[courses[i]] != perCourse[courses[j]] {
				return perCourse[courses[i]] > perCourse[courses[j]]
			}
			return courses[i] < courses[j]
		})

		values := make([]float64, 0, len(courses))
		for _, course := range courses {
			values = append(values, perCourse[course])
		}

		title := fmt.Sprintf("Enrollment at %d-level", level)
		chart, err := chartHTML(newHorizontalBar(title, courses, values, "Weighted Enrollment"))
		if err != nil {
			return nil, err
		}
		resultCharts = append(resultCharts, Chart{Title: title, HTML: chart})
	}

	return &Result{
		Name:     ebcl.Name(),
		Title:    ebcl.Title(),
		Subtitle: ebcl.Subtitle(),
		Charts:   resultCharts,
	}, nil
}
