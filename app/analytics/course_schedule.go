package analytics

import (
	"database/sql"
	"fmt"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
)

// CourseSchedule lists the filtered schedule as-is.
type CourseSchedule struct{}

func (*CourseSchedule) Name() string     { return "course-schedule" }
func (*CourseSchedule) Title() string    { return "Course Schedule" }
func (*CourseSchedule) Subtitle() string { return "The current course schedule" }

func (cs *CourseSchedule) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("course schedule query: %w", err)
	}

	return &Result{
		Name:     cs.Name(),
		Title:    cs.Title(),
		Subtitle: cs.Subtitle(),
		Tables:   []Table{meetingsTable("Course Schedule", meetings)},
	}, nil
}
