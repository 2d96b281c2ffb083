package models

// CourseMeeting is one scheduled class-section-meeting row from the
// `schedule` table, typed once at the ingestion boundary so downstream code
// never does string-keyed field access.
type CourseMeeting struct {
	Subject              string  `json:"subject" db:"subject"`
	CatalogNumber        string  `json:"catalog_number" db:"catalog_number"`
	FQCatalogNumber      string  `json:"fq_catalog_number" db:"fq_catalog_number"`
	Section              string  `json:"section" db:"section"`
	FQClassSection       string  `json:"fq_class_section" db:"fq_class_section"`
	ClassTitle           string  `json:"class_title" db:"class_title"`
	Instructor           string  `json:"instructor" db:"instructor"`
	EnrollTotal          int     `json:"enroll_total" db:"enroll_total"`
	WeightedEnrollTotal  float64 `json:"weighted_enroll_total" db:"weighted_enroll_total"`
	WeightedSchTotal     int     `json:"weighted_sch_total" db:"weighted_sch_total"`
	MeetingPattern       string  `json:"meeting_pattern" db:"meeting_pattern"`
	TradMeetingPattern   string  `json:"trad_meeting_pattern" db:"trad_meeting_pattern"`
	ClassStartTime       string  `json:"class_start_time" db:"class_start_time"`
	ClassEndTime         string  `json:"class_end_time" db:"class_end_time"`
	UnitClassDuration    int     `json:"unit_class_duration" db:"unit_class_duration"`
	InstructionalTime    int     `json:"instructional_time" db:"instructional_time"`
	Facility             string  `json:"facility" db:"facility"`
	CombinedID           string  `json:"combined_id" db:"combined_id"`
}

// CourseLevel derives the hundred-level (100, 200, ...) from the catalog
// number. Returns 0 when the catalog number has no leading digits.
func (m CourseMeeting) CourseLevel() int {
	level := 0
	digits := 0
	for _, r := range m.CatalogNumber {
		if r < '0' || r > '9' || digits == 3 {
			break
		}
		level = level*10 + int(r-'0')
		digits++
	}
	if digits < 3 {
		return 0
	}
	return level / 100 * 100
}
