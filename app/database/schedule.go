package database

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// OpenScheduleDB opens one upload's schedule database read-only for report
// queries.
func OpenScheduleDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// DepartmentFilter describes which of a department's sections belong in the
// reports. Other departments are added by appending a filter, not by
// copy-pasting SQL.
type DepartmentFilter struct {
	Subject                string
	ExcludedCatalogNumbers []string
	ExcludedSections       []string
}

// DefaultDepartmentFilters returns the stock computer-science inclusion
// rules: independent-study and lab sections are excluded from analytics.
func DefaultDepartmentFilters() []DepartmentFilter {
	return []DepartmentFilter{
		{
			Subject: "COMP",
			ExcludedCatalogNumbers: []string{
				"391", "398", "490", "499", "605",
				"215", "231", "331", "431", "381", "386", "383", "483",
			},
			ExcludedSections: []string{"01L", "02L", "03L", "04L", "05L", "06L", "700N"},
		},
	}
}

// buildWhereClause compiles department filters into a parameterized WHERE
// clause. Filters combine with OR; an empty filter list matches everything.
func buildWhereClause(filters []DepartmentFilter) (string, []interface{}) {
	if len(filters) == 0 {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	for _, f := range filters {
		var parts []string

		parts = append(parts, "subject = ?")
		args = append(args, f.Subject)

		if len(f.ExcludedCatalogNumbers) > 0 {
			parts = append(parts, "catalog_number NOT IN ("+placeholders(len(f.ExcludedCatalogNumbers))+")")
			for _, c := range f.ExcludedCatalogNumbers {
				args = append(args, c)
			}
		}

		if len(f.ExcludedSections) > 0 {
			parts = append(parts, "section NOT IN ("+placeholders(len(f.ExcludedSections))+")")
			for _, s := range f.ExcludedSections {
				args = append(args, s)
			}
		}

		clauses = append(clauses, "("+strings.Join(parts, " AND ")+")")
	}

	return " WHERE " + strings.Join(clauses, " OR "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// GetCourseSchedule returns the filtered course schedule every report is
// built from.
func GetCourseSchedule(db *sql.DB, filters []DepartmentFilter) ([]models.CourseMeeting, error) {
	query := `SELECT subject, catalog_number, fq_catalog_number, section,
			fq_class_section, class_title, instructor, enroll_total,
			weighted_enroll_total, weighted_sch_total, meeting_pattern,
			trad_meeting_pattern, class_start_time, class_end_time,
			unit_class_duration, instructional_time, facility, combined_id
		FROM schedule`

	where, args := buildWhereClause(filters)
	query += where + " ORDER BY fq_class_section"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.CourseMeeting
	for rows.Next() {
		var m models.CourseMeeting
		if err := rows.Scan(
			&m.Subject, &m.CatalogNumber, &m.FQCatalogNumber, &m.Section,
			&m.FQClassSection, &m.ClassTitle, &m.Instructor, &m.EnrollTotal,
			&m.WeightedEnrollTotal, &m.WeightedSchTotal, &m.MeetingPattern,
			&m.TradMeetingPattern, &m.ClassStartTime, &m.ClassEndTime,
			&m.UnitClassDuration, &m.InstructionalTime, &m.Facility, &m.CombinedID,
		); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
