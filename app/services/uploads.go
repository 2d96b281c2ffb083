package services

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// UploadRegistry owns the per-upload schedule databases under the data
// directory. Each upload gets its own sqlite file keyed by upload ID, and
// read handles are cached so concurrent report requests share one pool
// per upload.
type UploadRegistry struct {
	appDB   *sql.DB
	dataDir string
	ttl     time.Duration

	mu   sync.Mutex
	open map[string]*sql.DB
	done chan struct{}
}

func NewUploadRegistry(appDB *sql.DB, dataDir string, ttl time.Duration) *UploadRegistry {
	return &UploadRegistry{
		appDB:   appDB,
		dataDir: dataDir,
		ttl:     ttl,
		open:    make(map[string]*sql.DB),
		done:    make(chan struct{}),
	}
}

// SchedulePath returns the sqlite file backing one upload.
func (r *UploadRegistry) SchedulePath(id string) string {
	return filepath.Join(r.dataDir, id+".db")
}

// Ingest loads one workbook into a fresh schedule database and records the
// upload. On ingest failure the partial database file is removed.
func (r *UploadRegistry) Ingest(filename string, src io.Reader) (*models.Upload, *database.IngestResult, error) {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	id := uuid.New().String()
	path := r.SchedulePath(id)

	result, err := database.IngestWorkbook(src, path)
	if err != nil {
		os.Remove(path)
		return nil, nil, err
	}

	upload := &models.Upload{
		ID:          id,
		Filename:    filename,
		RowCount:    result.RowCount,
		SkippedRows: result.SkippedRows,
		IssueCount:  len(result.Issues),
		CreatedAt:   time.Now().UTC(),
	}
	if err := database.InsertUpload(r.appDB, upload); err != nil {
		os.Remove(path)
		return nil, nil, fmt.Errorf("record upload: %w", err)
	}

	log.Printf("Ingested %s as upload %s (%d rows, %d skipped)",
		filename, id, result.RowCount, result.SkippedRows)
	return upload, result, nil
}

// Open returns a cached read-only handle on one upload's schedule database.
func (r *UploadRegistry) Open(id string) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.open[id]; ok {
		return db, nil
	}

	path := r.SchedulePath(id)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("upload %s: %w", id, err)
	}

	db, err := database.OpenScheduleDB(path)
	if err != nil {
		return nil, err
	}
	r.open[id] = db
	return db, nil
}

// Evict removes one upload: its record, its cached handle, and its file.
func (r *UploadRegistry) Evict(id string) error {
	r.mu.Lock()
	if db, ok := r.open[id]; ok {
		db.Close()
		delete(r.open, id)
	}
	r.mu.Unlock()

	if err := database.DeleteUpload(r.appDB, id); err != nil {
		return fmt.Errorf("delete upload %s: %w", id, err)
	}
	if err := os.Remove(r.SchedulePath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove schedule db %s: %w", id, err)
	}
	return nil
}

// Close shuts the janitor down and closes every cached handle.
func (r *UploadRegistry) Close() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, db := range r.open {
		db.Close()
		delete(r.open, id)
	}
}

// StartJanitor starts the background eviction loop for expired uploads.
// A non-positive interval disables the loop, like a non-positive TTL.
func (r *UploadRegistry) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		log.Println("Upload janitor disabled")
		return
	}

	go func() {
		log.Println("Upload janitor started...")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				if err := r.evictExpired(); err != nil {
					log.Printf("Error evicting expired uploads: %v", err)
				}
			}
		}
	}()
}

func (r *UploadRegistry) evictExpired() error {
	if r.ttl <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().Add(-r.ttl)
	expired, err := database.ListUploadsBefore(r.appDB, cutoff)
	if err != nil {
		return err
	}

	for _, upload := range expired {
		if err := r.Evict(upload.ID); err != nil {
			log.Printf("Error evicting upload %s: %v", upload.ID, err)
			continue
		}
		log.Printf("Evicted expired upload %s (%s)", upload.ID, upload.Filename)
	}
	return nil
}
