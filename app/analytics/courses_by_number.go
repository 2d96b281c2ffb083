package analytics

import (
	"database/sql"
	"fmt"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// CoursesByNumber groups sections sharing a fully qualified catalog number,
// one table per course.
type CoursesByNumber struct{}

func (*CoursesByNumber) Name() string  { return "courses-by-number" }
func (*CoursesByNumber) Title() string { return "Show Courses by Course Number" }

func (*CoursesByNumber) Subtitle() string {
	return "A view of courses that share a course number"
}

func (cbn *CoursesByNumber) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("courses by number query: %w", err)
	}

	var order []string
	groups := make(map[string][]models.CourseMeeting)
	for _, m := range meetings {
		if _, seen := groups[m.FQCatalogNumber]; !seen {
			order = append(order, m.FQCatalogNumber)
		}
		groups[m.FQCatalogNumber] = append(groups[m.FQCatalogNumber], m)
	}

	var tables []Table
	for _, number := range order {
		group := groups[number]
		tables = append(tables, meetingsTable(
			fmt.Sprintf("%s: %s", number, group[0].ClassTitle),
			group,
		))
	}

	return &Result{
		Name:     cbn.Name(),
		Title:    cbn.Title(),
		Subtitle: cbn.Subtitle(),
		Tables:   tables,
	}, nil
}
