package config

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

type Config struct {
	DB *sql.DB

	HTTPAddr  string
	DataDir   string
	JWTSecret string

	// UploadTTL bounds how long an uploaded schedule stays available.
	// Zero disables eviction.
	UploadTTL       time.Duration
	JanitorInterval time.Duration

	Grid schedule.GridConfig
}

var AppConfig *Config

// Load reads the environment, opens the application database, and runs
// migrations. It must be called once before the app serves requests.
func Load() {
	cfg := &Config{
		HTTPAddr:        envString("HTTP_ADDR", ":8080"),
		DataDir:         envString("DATA_DIR", "data"),
		JWTSecret:       envString("JWT_SECRET", "course-lens-dev-secret"),
		UploadTTL:       envDuration("UPLOAD_TTL", 24*time.Hour),
		JanitorInterval: envDuration("JANITOR_INTERVAL", 10*time.Minute),
		Grid:            gridFromEnv(),
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	db, err := database.OpenAppDB(filepath.Join(cfg.DataDir, "app.db"))
	if err != nil {
		log.Fatal("Failed to open application database:", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	cfg.DB = db
	AppConfig = cfg
	log.Println("Configuration loaded, database connected")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// gridFromEnv starts from the stock density grid and applies any window or
// threshold overrides from the environment.
func gridFromEnv() schedule.GridConfig {
	grid := schedule.DefaultGridConfig()
	grid.StartHour = envInt("DENSITY_START_HOUR", grid.StartHour)
	grid.EndHour = envInt("DENSITY_END_HOUR", grid.EndHour)
	grid.StepMinutes = envInt("DENSITY_STEP_MINUTES", grid.StepMinutes)
	grid.OverlapThreshold = envInt("DENSITY_OVERLAP_THRESHOLD", grid.OverlapThreshold)
	return grid.Sanitize()
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q: %v", key, v, err)
		return fallback
	}
	return d
}
