package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

func newTestRegistry(t *testing.T, ttl time.Duration) *UploadRegistry {
	t.Helper()

	dir := t.TempDir()
	appDB, err := database.OpenAppDB(filepath.Join(dir, "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { appDB.Close() })
	require.NoError(t, database.RunMigrations(appDB))

	registry := NewUploadRegistry(appDB, dir, ttl)
	t.Cleanup(registry.Close)
	return registry
}

// seedUpload fakes a completed ingest: an uploads row plus a schedule file.
func seedUpload(t *testing.T, r *UploadRegistry, id string, createdAt time.Time) {
	t.Helper()

	db, err := sql.Open("sqlite3", r.SchedulePath(id))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE schedule (subject TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, database.InsertUpload(r.appDB, &models.Upload{
		ID:        id,
		Filename:  id + ".xlsx",
		RowCount:  1,
		CreatedAt: createdAt,
	}))
}

func TestUploadRegistry_OpenCachesHandle(t *testing.T) {
	registry := newTestRegistry(t, time.Hour)
	seedUpload(t, registry, "upload-a", time.Now().UTC())

	first, err := registry.Open("upload-a")
	require.NoError(t, err)

	second, err := registry.Open("upload-a")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestUploadRegistry_OpenUnknownUpload(t *testing.T) {
	registry := newTestRegistry(t, time.Hour)

	_, err := registry.Open("missing")
	assert.Error(t, err)
}

func TestUploadRegistry_EvictRemovesEverything(t *testing.T) {
	registry := newTestRegistry(t, time.Hour)
	seedUpload(t, registry, "upload-b", time.Now().UTC())

	_, err := registry.Open("upload-b")
	require.NoError(t, err)

	require.NoError(t, registry.Evict("upload-b"))

	_, err = os.Stat(registry.SchedulePath("upload-b"))
	assert.True(t, os.IsNotExist(err))

	_, err = database.GetUpload(registry.appDB, "upload-b")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUploadRegistry_EvictExpiredKeepsFreshUploads(t *testing.T) {
	registry := newTestRegistry(t, time.Hour)
	seedUpload(t, registry, "stale", time.Now().UTC().Add(-2*time.Hour))
	seedUpload(t, registry, "fresh", time.Now().UTC())

	require.NoError(t, registry.evictExpired())

	_, err := database.GetUpload(registry.appDB, "stale")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	fresh, err := database.GetUpload(registry.appDB, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh.ID)
}

func TestUploadRegistry_JanitorDisabledOnNonPositiveInterval(t *testing.T) {
	registry := newTestRegistry(t, time.Hour)

	// Must not panic or start a ticker.
	registry.StartJanitor(0)
	registry.StartJanitor(-time.Minute)
}
