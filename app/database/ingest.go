package database

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

// Source column headers in the registrar's spreadsheet export.
const (
	colSubject        = "SUBJECT"
	colCatalogNumber  = "CATALOG NUMBER"
	colSection        = "SECTION"
	colClassTitle     = "CLASS TITLE"
	colInstructor     = "INSTRUCTOR"
	colEnrollTotal    = "ENROLL TOTAL"
	colMeetingPattern = "MEETING PATTERN"
	colStartTime      = "CLASS START TIME"
	colEndTime        = "CLASS END TIME"
	colFacility       = "FACILITY"
)

// Placeholder values for blank cells, carried over from the legacy pipeline
// so downstream filters keep matching.
const (
	defaultInstructor = "Turing,Alan"
	defaultFacility   = "Doyole Hall"
)

const scheduleSchema = `
CREATE TABLE IF NOT EXISTS schedule (
	subject TEXT NOT NULL,
	catalog_number TEXT NOT NULL,
	fq_catalog_number TEXT NOT NULL,
	section TEXT NOT NULL,
	fq_class_section TEXT NOT NULL,
	class_title TEXT NOT NULL,
	instructor TEXT NOT NULL,
	enroll_total INTEGER NOT NULL,
	weighted_enroll_total REAL NOT NULL,
	weighted_sch_total INTEGER NOT NULL,
	meeting_pattern TEXT NOT NULL,
	trad_meeting_pattern TEXT NOT NULL,
	class_start_time TEXT NOT NULL,
	class_end_time TEXT NOT NULL,
	unit_class_duration INTEGER NOT NULL,
	instructional_time INTEGER NOT NULL,
	facility TEXT NOT NULL,
	combined_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_schedule_subject ON schedule (subject);
CREATE INDEX IF NOT EXISTS idx_schedule_combined_id ON schedule (combined_id);
`

// IngestResult summarizes one workbook ingestion.
type IngestResult struct {
	RowCount    int
	SkippedRows int
	Issues      []string
}

// IngestWorkbook reads the first sheet of an xlsx export and loads it into
// a fresh schedule database at dbPath. Dirty rows are recorded as issues
// and skipped rather than aborting the batch; duplicate class sections are
// dropped, keeping the first occurrence.
func IngestWorkbook(r io.Reader, dbPath string) (*IngestResult, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open schedule database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(scheduleSchema); err != nil {
		return nil, fmt.Errorf("create schedule table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO schedule (
		subject, catalog_number, fq_catalog_number, section, fq_class_section,
		class_title, instructor, enroll_total, weighted_enroll_total,
		weighted_sch_total, meeting_pattern, trad_meeting_pattern,
		class_start_time, class_end_time, unit_class_duration,
		instructional_time, facility, combined_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	result := &IngestResult{}
	seenSections := make(map[string]bool)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		subject := cell(row, header[colSubject])
		catalog := cell(row, header[colCatalogNumber])
		section := cell(row, header[colSection])

		if subject == "" && catalog == "" {
			continue
		}

		fqClassSection := catalog + "-" + section
		if seenSections[fqClassSection] {
			result.SkippedRows++
			continue
		}
		seenSections[fqClassSection] = true

		instructor := cell(row, header[colInstructor])
		if instructor == "" {
			instructor = defaultInstructor
		}
		facility := cell(row, header[colFacility])
		if facility == "" {
			facility = defaultFacility
		}

		enrollTotal, err := strconv.Atoi(cell(row, header[colEnrollTotal]))
		if err != nil {
			enrollTotal = 0
		}

		startTime, err := normalizeWallClock(cell(row, header[colStartTime]))
		if err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("row %d: %v", rowNum, err))
		}
		endTime, err := normalizeWallClock(cell(row, header[colEndTime]))
		if err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("row %d: %v", rowNum, err))
		}

		rawPattern := cell(row, header[colMeetingPattern])
		tradPattern := normalizePattern(rawPattern)
		if _, err := schedule.ParseMeetingPattern(tradPattern); err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("row %d: %v", rowNum, err))
		}

		duration := 0
		if begin, err := schedule.ParseClock(startTime); err == nil {
			if end, err := schedule.ParseClock(endTime); err == nil {
				duration = end - begin
			}
		}

		weightedEnroll := weightedEnrollment(catalog, enrollTotal)
		weightedSCH := weightedScheduleHours(catalog, weightedEnroll)
		combinedID := fmt.Sprintf("(%s,%s,%s,%s,%s)", instructor, facility, tradPattern, startTime, endTime)

		_, err = stmt.Exec(
			subject, catalog, subject+"-"+catalog, section, fqClassSection,
			cell(row, header[colClassTitle]), instructor, enrollTotal,
			weightedEnroll, weightedSCH, rawPattern, tradPattern,
			startTime, endTime, duration, 0, facility, combinedID,
		)
		if err != nil {
			return nil, fmt.Errorf("insert row %d: %w", rowNum, err)
		}
		result.RowCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Printf("Ingested %d schedule rows (%d duplicates skipped, %d issues)",
		result.RowCount, result.SkippedRows, len(result.Issues))

	return result, nil
}

// indexHeader maps required source columns to their positions.
func indexHeader(headerRow []string) (map[string]int, error) {
	index := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	required := []string{
		colSubject, colCatalogNumber, colSection, colClassTitle,
		colInstructor, colEnrollTotal, colMeetingPattern,
		colStartTime, colEndTime, colFacility,
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("workbook is missing required column %q", name)
		}
	}
	return index, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var wallClockLayouts = []string{"3:04 PM", "03:04 PM", "15:04:05", "15:04"}

// normalizeWallClock converts the export's 12-hour times to HH:MM:SS.
// Blank cells stay blank; the density layer reports them per row.
func normalizeWallClock(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	for _, layout := range wallClockLayouts {
		if parsed, err := time.Parse(layout, strings.ToUpper(value)); err == nil {
			return parsed.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("unparseable class time %q", value)
}

// normalizePattern applies the whole-value day-code aliases from the legacy
// pipeline, except that the Tuesday/Thursday pair code keeps both days.
func normalizePattern(raw string) string {
	pattern := strings.TrimSpace(raw)
	if pattern == "" {
		return schedule.NoMeetingPattern
	}
	switch pattern {
	case "TTR":
		return "TR"
	case "SA":
		return "S"
	case "SU":
		return "X"
	}
	return pattern
}

// weightedEnrollment applies the course-level weighting: 400-level courses
// count 5/3, everything else counts 1.0. Catalog numbers compare as strings
// in the source data.
func weightedEnrollment(catalog string, enrollTotal int) float64 {
	if catalog >= "400" {
		return float64(enrollTotal) * 5 / 3
	}
	return float64(enrollTotal)
}

// weightedScheduleHours computes weighted student credit hours. Catalog 395
// is the one-credit seminar; everything else is three credits.
func weightedScheduleHours(catalog string, weightedEnroll float64) int {
	credits := 3
	if catalog == "395" {
		credits = 1
	}
	return int(float64(credits) * weightedEnroll)
}
