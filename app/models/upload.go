package models

import "time"

// Upload is one ingested spreadsheet. Each upload gets its own schedule
// database file under the data directory; the registry row outlives the
// file only until the janitor evicts both.
type Upload struct {
	ID          string    `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	RowCount    int       `json:"row_count" db:"row_count"`
	SkippedRows int       `json:"skipped_rows" db:"skipped_rows"`
	IssueCount  int       `json:"issue_count" db:"issue_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
