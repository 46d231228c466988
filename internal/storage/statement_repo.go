package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_statement_store.go -package=mocks assembly-rag/internal/storage StatementStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// StatementStore defines the storage operations on indexed statements.
type StatementStore interface {
	// Upsert inserts a statement or replaces its content, hash and point ID.
	Upsert(ctx context.Context, s *StatementRecord) error
	// HashesByMinutes maps document ID to content hash for one transcript.
	HashesByMinutes(ctx context.Context, minutesID string) (map[string]string, error)
	// GetDetails returns statements joined with their transcript, keyed by document ID.
	// Unknown IDs are absent from the result.
	GetDetails(ctx context.Context, documentIDs []string) (map[string]*StatementDetail, error)
	// ListPointIDs returns every stored vector-store point ID.
	ListPointIDs(ctx context.Context) ([]string, error)
	// DeleteAll removes every statement and transcript.
	DeleteAll(ctx context.Context) error
	// Count returns the number of stored statements.
	Count(ctx context.Context) (int, error)
}

// StatementRepo implements StatementStore on SQLite.
type StatementRepo struct {
	db *sql.DB
}

// NewStatementRepo creates a new StatementRepo.
func NewStatementRepo(db *sql.DB) *StatementRepo {
	return &StatementRepo{db: db}
}

// Upsert inserts a statement or replaces its mutable columns.
// The parent transcript must exist.
func (r *StatementRepo) Upsert(ctx context.Context, s *StatementRecord) error {
	if s.DocumentID == "" || s.PointID == "" {
		return fmt.Errorf("statement document id and point id are required")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO statements (document_id, minutes_id, speech_order, speaker_name, position, content, hash, point_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (document_id) DO UPDATE SET
		 speaker_name = excluded.speaker_name, position = excluded.position,
		 content = excluded.content, hash = excluded.hash, point_id = excluded.point_id`,
		s.DocumentID, s.MinutesID, s.SpeechOrder, s.SpeakerName, s.Position, s.Content, s.Hash, s.PointID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert statement: %w", err)
	}
	return nil
}

// HashesByMinutes maps document ID to content hash for one transcript.
// Returns an empty map when the transcript has no statements.
func (r *StatementRepo) HashesByMinutes(ctx context.Context, minutesID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT document_id, hash FROM statements WHERE minutes_id = ?", minutesID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement hashes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	hashes := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan statement hash: %w", err)
		}
		hashes[id] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return hashes, nil
}

// GetDetails returns statements joined with their transcript, keyed by document ID.
func (r *StatementRepo) GetDetails(ctx context.Context, documentIDs []string) (map[string]*StatementDetail, error) {
	details := make(map[string]*StatementDetail, len(documentIDs))
	if len(documentIDs) == 0 {
		return details, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(documentIDs)), ",")
	args := make([]any, len(documentIDs))
	for i, id := range documentIDs {
		args[i] = id
	}

	query := `SELECT s.document_id, s.minutes_id, s.speech_order, s.speaker_name, s.position, s.content, s.hash, s.point_id,
		m.minutes_type, m.minutes_date, m.assembly_number, m.session_number, m.sub_session, m.source_file
		FROM statements s JOIN minutes m ON m.id = s.minutes_id
		WHERE s.document_id IN (` + placeholders + `)`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var d StatementDetail
		if err := rows.Scan(
			&d.DocumentID, &d.MinutesID, &d.SpeechOrder, &d.SpeakerName, &d.Position, &d.Content, &d.Hash, &d.PointID,
			&d.Minutes.MinutesType, &d.Minutes.MinutesDate, &d.Minutes.AssemblyNumber, &d.Minutes.SessionNumber,
			&d.Minutes.SubSession, &d.Minutes.SourceFile,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		d.Minutes.ID = d.MinutesID
		details[d.DocumentID] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return details, nil
}

// ListPointIDs returns every stored vector-store point ID.
func (r *StatementRepo) ListPointIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT point_id FROM statements ORDER BY document_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query point IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan point ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// DeleteAll removes every statement and transcript in one transaction.
func (r *StatementRepo) DeleteAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM statements"); err != nil {
		return fmt.Errorf("failed to delete statements: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM minutes"); err != nil {
		return fmt.Errorf("failed to delete minutes: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// Count returns the number of stored statements.
func (r *StatementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM statements").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count statements: %w", err)
	}
	return n, nil
}
