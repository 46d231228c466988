package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_minutes_store.go -package=mocks assembly-rag/internal/storage MinutesStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// MinutesStore defines the storage operations on meeting transcripts.
type MinutesStore interface {
	// Upsert inserts a transcript or refreshes its metadata.
	Upsert(ctx context.Context, m *MinutesRecord) error
	// Get returns a transcript by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*MinutesRecord, error)
	// Count returns the number of stored transcripts.
	Count(ctx context.Context) (int, error)
}

// MinutesRepo implements MinutesStore on SQLite.
type MinutesRepo struct {
	db *sql.DB
}

// NewMinutesRepo creates a new MinutesRepo.
func NewMinutesRepo(db *sql.DB) *MinutesRepo {
	return &MinutesRepo{db: db}
}

// Upsert inserts a transcript or refreshes its metadata and indexed_at.
func (r *MinutesRepo) Upsert(ctx context.Context, m *MinutesRecord) error {
	if m.ID == "" {
		return fmt.Errorf("minutes id is required")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO minutes (id, minutes_type, minutes_date, assembly_number, session_number, sub_session, source_file, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
		 minutes_type = excluded.minutes_type, minutes_date = excluded.minutes_date,
		 assembly_number = excluded.assembly_number, session_number = excluded.session_number,
		 sub_session = excluded.sub_session, source_file = excluded.source_file,
		 indexed_at = CURRENT_TIMESTAMP`,
		m.ID, m.MinutesType, m.MinutesDate, m.AssemblyNumber, m.SessionNumber, m.SubSession, m.SourceFile,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert minutes: %w", err)
	}
	return nil
}

// Get returns a transcript by ID, or ErrNotFound.
func (r *MinutesRepo) Get(ctx context.Context, id string) (*MinutesRecord, error) {
	var m MinutesRecord
	var indexedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, minutes_type, minutes_date, assembly_number, session_number, sub_session, source_file, indexed_at
		 FROM minutes WHERE id = ?`, id,
	).Scan(&m.ID, &m.MinutesType, &m.MinutesDate, &m.AssemblyNumber, &m.SessionNumber, &m.SubSession, &m.SourceFile, &indexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query minutes: %w", err)
	}
	m.IndexedAt = parseTimestamp(indexedAt)
	return &m, nil
}

// Count returns the number of stored transcripts.
func (r *MinutesRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM minutes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count minutes: %w", err)
	}
	return n, nil
}

// parseTimestamp accepts both DATETIME layouts the sqlite3 driver hands back.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
