package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// driver: "sqlite" (the default, a local file under data/) or "postgres"
// (connection string taken from DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		db, err = sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	default:
		// Create data directory if it doesn't exist
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "reviewbot.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Автоинкрементные идентификаторы объявляются по-разному
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	// Create users table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			telegram_id BIGINT PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			is_admin BOOLEAN DEFAULT false,
			notification_enabled BOOLEAN DEFAULT true,
			notification_hour INTEGER DEFAULT 9,
			reviews_per_day INTEGER DEFAULT 10,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	// Create study_records table
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS study_records (
			id %s,
			user_id BIGINT NOT NULL,
			subject TEXT NOT NULL,
			topics TEXT NOT NULL,
			study_date TIMESTAMP NOT NULL,
			understanding INTEGER NOT NULL DEFAULT 3,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create study_records table: %v", err)
	}

	// Create review_items table
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS review_items (
			id %s,
			user_id BIGINT NOT NULL,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL,
			last_study_date TIMESTAMP NOT NULL,
			next_review_date TIMESTAMP NOT NULL,
			review_count INTEGER NOT NULL DEFAULT 0,
			difficulty INTEGER NOT NULL DEFAULT 3,
			understanding INTEGER NOT NULL DEFAULT 3,
			priority INTEGER NOT NULL DEFAULT 10,
			forgetting_curve_stage INTEGER NOT NULL DEFAULT 1,
			interval_days INTEGER NOT NULL DEFAULT 1,
			is_completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, subject, topic)
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create review_items table: %v", err)
	}

	// Create review_sessions table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS review_sessions (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			session_date TIMESTAMP NOT NULL,
			item_count INTEGER NOT NULL DEFAULT 0,
			completed_count INTEGER NOT NULL DEFAULT 0,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			average_understanding REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_sessions table: %v", err)
	}

	return nil
}
