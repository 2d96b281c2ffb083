package analytics

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
)

// Enrollment-health thresholds on the weighted group total.
const (
	healthRedBelow   = 12
	healthGreenBelow = 32
)

// CourseEnrollmentHealth classifies each distinct meeting slot by its
// weighted enrollment total: red below 12, green below 32, blue otherwise.
type CourseEnrollmentHealth struct{}

func (*CourseEnrollmentHealth) Name() string  { return "course-enrollment-health" }
func (*CourseEnrollmentHealth) Title() string { return "Course Enrollment Health" }

func (*CourseEnrollmentHealth) Subtitle() string {
	return "Health of each course by weighted enrollment"
}

func healthColor(weightedSum float64) string {
	switch {
	case weightedSum < healthRedBelow:
		return "red"
	case weightedSum < healthGreenBelow:
		return "green"
	default:
		return "blue"
	}
}

func (ceh *CourseEnrollmentHealth) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("enrollment health query: %w", err)
	}

	order, groups := groupByCombinedID(meetings)

	var tables []Table
	for _, combinedID := range order {
		group := groups[combinedID]
		weighted := int(math.Ceil(groupWeightedSum(group)))

		table := meetingsTable(
			fmt.Sprintf("[%s] %s has %d weighted enrollments", healthColor(float64(weighted)), group[0].FQClassSection, weighted),
			group,
		)
		tables = append(tables, table)
	}

	return &Result{
		Name:     ceh.Name(),
		Title:    ceh.Title(),
		Subtitle: ceh.Subtitle(),
		Tables:   tables,
	}, nil
}

// InTroubleCourses surfaces only the meeting slots whose weighted total
// falls below the trouble threshold.
type InTroubleCourses struct{}

const troubleThreshold = 10

func (*InTroubleCourses) Name() string     { return "in-trouble-courses" }
func (*InTroubleCourses) Title() string    { return "In Trouble Courses" }
func (*InTroubleCourses) Subtitle() string { return "Courses in trouble" }

func (itc *InTroubleCourses) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("in-trouble courses query: %w", err)
	}

	order, groups := groupByCombinedID(meetings)

	var tables []Table
	count := 0
	for _, combinedID := range order {
		group := groups[combinedID]
		weighted := int(math.Ceil(groupWeightedSum(group)))
		if weighted >= troubleThreshold {
			continue
		}
		count++
		tables = append(tables, meetingsTable(
			fmt.Sprintf("Course %d has %d enrollments", count, weighted),
			group,
		))
	}

	return &Result{
		Name:     itc.Name(),
		Title:    itc.Title(),
		Subtitle: itc.Subtitle(),
		Tables:   tables,
	}, nil
}
