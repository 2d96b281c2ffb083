// Package analytics implements the course-schedule reports. Every report
// reads the filtered schedule for one upload and returns an explicit Result
// instead of mutating shared UI state, so concurrent report requests stay
// independent.
package analytics

import (
	"database/sql"
	"fmt"
	"html/template"
	"strconv"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

// Options carries the per-request knobs shared by the reports.
type Options struct {
	Filters              []database.DepartmentFilter
	Grid                 schedule.GridConfig
	FilterZeroEnrollment bool
}

// DefaultOptions returns the stock department filters and density grid.
func DefaultOptions() Options {
	return Options{
		Filters: database.DefaultDepartmentFilters(),
		Grid:    schedule.DefaultGridConfig(),
	}
}

// Table is one tabular block of a report result.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Chart is one rendered chart block: the echarts div and init script,
// ready to inline into a report page.
type Chart struct {
	Title string        `json:"title"`
	HTML  template.HTML `json:"-"`
}

// Result is everything a report run produced.
type Result struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Tables   []Table `json:"tables,omitempty"`
	Charts   []Chart `json:"charts,omitempty"`
}

// Analytic is one report over a schedule database.
type Analytic interface {
	Name() string
	Title() string
	Subtitle() string
	Run(db *sql.DB, opts Options) (*Result, error)
}

// Registry returns the reports in menu order.
func Registry() []Analytic {
	return []Analytic{
		&ScheduleDensity{},
		&CourseSchedule{},
		&CoursesByNumber{},
		&AssignmentsPerFaculty{},
		&TeachingDistribution{},
		&InstructorAssignments{},
		&CourseEnrollmentHealth{},
		&InTroubleCourses{},
		&SchoolCreditHours{},
		&EnrollmentByCourseLevel{},
		&OnlineCourseSchedule{},
		&ZeroEnrollment{},
	}
}

// Lookup finds a report by its URL slug.
func Lookup(name string) (Analytic, bool) {
	for _, a := range Registry() {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

var meetingColumns = []string{
	"Section", "Title", "Instructor", "Enrolled", "Weighted",
	"Pattern", "Start", "End", "Facility",
}

// meetingsTable renders course meetings as a standard report table.
func meetingsTable(title string, meetings []models.CourseMeeting) Table {
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, []string{
			m.FQClassSection,
			m.ClassTitle,
			m.Instructor,
			strconv.Itoa(m.EnrollTotal),
			fmt.Sprintf("%.1f", m.WeightedEnrollTotal),
			m.TradMeetingPattern,
			m.ClassStartTime,
			m.ClassEndTime,
			m.Facility,
		})
	}

	return Table{Title: title, Columns: meetingColumns, Rows: rows}
}

// groupByCombinedID buckets meetings by their combined ID, preserving first
// appearance order.
func groupByCombinedID(meetings []models.CourseMeeting) ([]string, map[string][]models.CourseMeeting) {
	var order []string
	groups := make(map[string][]models.CourseMeeting)

	for _, m := range meetings {
		if _, seen := groups[m.CombinedID]; !seen {
			order = append(order, m.CombinedID)
		}
		groups[m.CombinedID] = append(groups[m.CombinedID], m)
	}
	return order, groups
}

func groupWeightedSum(group []models.CourseMeeting) float64 {
	total := 0.0
	for _, m := range group {
		total += m.WeightedEnrollTotal
	}
	return total
}
