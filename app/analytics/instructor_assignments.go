package analytics

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// InstructorAssignments lists every instructor's assignments, one table per
// distinct meeting slot, titled "name (i/n)".
type InstructorAssignments struct{}

func (*InstructorAssignments) Name() string     { return "instructor-assignments" }
func (*InstructorAssignments) Title() string    { return "Instructor Assignments" }
func (*InstructorAssignments) Subtitle() string { return "Show instructor assignments" }

func (ia *InstructorAssignments) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("instructor assignments query: %w", err)
	}

	if options.FilterZeroEnrollment {
		filtered := meetings[:0]
		for _, m := range meetings {
			if m.EnrollTotal > 0 {
				filtered = append(filtered, m)
			}
		}
		meetings = filtered
	}

	byInstructor := make(map[string][]models.CourseMeeting)
	var instructors []string
	for _, m := range meetings {
		if _, seen := byInstructor[m.Instructor]; !seen {
			instructors = append(instructors, m.Instructor)
		}
		byInstructor[m.Instructor] = append(byInstructor[m.Instructor], m)
	}
	sort.Strings(instructors)

	var tables []Table
	for _, instructor := range instructors {
		order, groups := groupByCombinedID(byInstructor[instructor])
		for i, combinedID := range order {
			tables = append(tables, meetingsTable(
				fmt.Sprintf("%s (%d/%d)", instructor, i+1, len(order)),
				groups[combinedID],
			))
		}
	}

	return &Result{
		Name:     ia.Name(),
		Title:    ia.Title(),
		Subtitle: ia.Subtitle(),
		Tables:   tables,
	}, nil
}
