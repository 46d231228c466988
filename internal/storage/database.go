package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys and WAL are set through the DSN so every pooled connection gets them.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the minutes and statements tables. It is idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS minutes (
			id TEXT PRIMARY KEY,
			minutes_type TEXT NOT NULL DEFAULT '',
			minutes_date TEXT NOT NULL DEFAULT '',
			assembly_number TEXT NOT NULL DEFAULT '',
			session_number TEXT NOT NULL DEFAULT '',
			sub_session TEXT NOT NULL DEFAULT '',
			source_file TEXT NOT NULL DEFAULT '',
			indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS statements (
			document_id TEXT PRIMARY KEY,
			minutes_id TEXT NOT NULL,
			speech_order INTEGER NOT NULL,
			speaker_name TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			hash TEXT NOT NULL,
			point_id TEXT NOT NULL UNIQUE,
			FOREIGN KEY (minutes_id) REFERENCES minutes(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_statements_minutes ON statements (minutes_id, speech_order);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
