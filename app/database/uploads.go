package database

import (
	"database/sql"
	"time"

	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

func InsertUpload(db *sql.DB, upload *models.Upload) error {
	query := `INSERT INTO uploads (id, filename, row_count, skipped_rows, issue_count, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.Exec(query, upload.ID, upload.Filename, upload.RowCount, upload.SkippedRows, upload.IssueCount, upload.CreatedAt)
	return err
}

func GetUpload(db *sql.DB, id string) (*models.Upload, error) {
	upload := &models.Upload{}
	query := `SELECT id, filename, row_count, skipped_rows, issue_count, created_at FROM uploads WHERE id = ?`

	err := db.QueryRow(query, id).Scan(
		&upload.ID, &upload.Filename, &upload.RowCount, &upload.SkippedRows, &upload.IssueCount, &upload.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func ListUploads(db *sql.DB) ([]*models.Upload, error) {
	query := `SELECT id, filename, row_count, skipped_rows, issue_count, created_at
			  FROM uploads ORDER BY created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		upload := &models.Upload{}
		if err := rows.Scan(&upload.ID, &upload.Filename, &upload.RowCount, &upload.SkippedRows, &upload.IssueCount, &upload.CreatedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}

// ListUploadsBefore returns uploads older than the cutoff, for eviction.
func ListUploadsBefore(db *sql.DB, cutoff time.Time) ([]*models.Upload, error) {
	query := `SELECT id, filename, row_count, skipped_rows, issue_count, created_at
			  FROM uploads WHERE created_at < ?`

	rows, err := db.Query(query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		upload := &models.Upload{}
		if err := rows.Scan(&upload.ID, &upload.Filename, &upload.RowCount, &upload.SkippedRows, &upload.IssueCount, &upload.CreatedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}

func DeleteUpload(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM uploads WHERE id = ?`, id)
	return err
}
