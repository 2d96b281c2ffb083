package analytics

import (
	"database/sql"
	"fmt"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// OnlineCourseSchedule lists only sections taught in the ONLINE facility.
type OnlineCourseSchedule struct{}

func (*OnlineCourseSchedule) Name() string  { return "online-course-schedule" }
func (*OnlineCourseSchedule) Title() string { return "Online Only Course Schedule" }

func (*OnlineCourseSchedule) Subtitle() string {
	return "The current course schedule for online only courses"
}

func (ocs *OnlineCourseSchedule) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("online schedule query: %w", err)
	}

	var online []models.CourseMeeting
	for _, m := range meetings {
		if m.Facility == "ONLINE" {
			online = append(online, m)
		}
	}

	return &Result{
		Name:     ocs.Name(),
		Title:    ocs.Title(),
		Subtitle: ocs.Subtitle(),
		Tables:   []Table{meetingsTable("Online Course Schedule", online)},
	}, nil
}

// ZeroEnrollment lists sections nobody has enrolled in.
type ZeroEnrollment struct{}

func (*ZeroEnrollment) Name() string     { return "zero-enrollment" }
func (*ZeroEnrollment) Title() string    { return "Zero Enrollment Courses" }
func (*ZeroEnrollment) Subtitle() string { return "Sections with no enrolled students" }

func (ze *ZeroEnrollment) Run(db *sql.DB, options Options) (*Result, error) {
	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		return nil, fmt.Errorf("zero enrollment query: %w", err)
	}

	var empty []models.CourseMeeting
	for _, m := range meetings {
		if m.EnrollTotal == 0 {
			empty = append(empty, m)
		}
	}

	return &Result{
		Name:     ze.Name(),
		Title:    ze.Title(),
		Subtitle: ze.Subtitle(),
		Tables:   []Table{meetingsTable("Zero Enrollment Sections", empty)},
	}, nil
}
