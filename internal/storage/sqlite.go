// Package storage provides the session stores (SQLite for single-node
// deployments, PostgreSQL for shared ones) and the result caches that
// sit in front of them.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrigenomics-server/internal/domain"
)

// SQLiteStore implements domain.Store on an embedded SQLite database.
// It is the default driver; no external services required.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database file and
// schema at dbPath. ":memory:" gives an ephemeral store for tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency under the HTTP server.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		filepath TEXT NOT NULL,
		original_filename TEXT NOT NULL,
		file_size_bytes INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		has_genetic_results INTEGER NOT NULL DEFAULT 0,
		has_questionnaire INTEGER NOT NULL DEFAULT 0,
		has_recommendations INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS genetic_results (
		session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
		file_info TEXT NOT NULL,
		findings BLOB NOT NULL,
		summary TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questionnaires (
		session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
		answers TEXT NOT NULL,
		submitted_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recommendations (
		session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
		bundle TEXT NOT NULL,
		generated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// SaveSession inserts or updates a session row.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, filepath, original_filename, file_size_bytes, status,
			has_genetic_results, has_questionnaire, has_recommendations,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			filepath = excluded.filepath,
			status = excluded.status,
			has_genetic_results = excluded.has_genetic_results,
			has_questionnaire = excluded.has_questionnaire,
			has_recommendations = excluded.has_recommendations,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.Filepath, session.OriginalFilename,
		session.FileSizeBytes, string(session.Status),
		session.HasGeneticResults, session.HasQuestionnaire, session.HasRecommendations,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `
		SELECT id, filepath, original_filename, file_size_bytes, status,
		       has_genetic_results, has_questionnaire, has_recommendations,
		       created_at, updated_at
		FROM sessions WHERE id = ?
	`

	session := &domain.Session{}
	var status string
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID, &session.Filepath, &session.OriginalFilename,
		&session.FileSizeBytes, &status,
		&session.HasGeneticResults, &session.HasQuestionnaire, &session.HasRecommendations,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.Status = domain.SessionStatus(status)
	return session, nil
}

// DeleteSession removes a session and all derived rows.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	// Cascade manually; sqlite foreign keys are off by default.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"recommendations", "questionnaires", "genetic_results"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", table), sessionID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	return tx.Commit()
}

// SaveGeneticResults stores the (encrypted) analysis output for a
// session.
func (s *SQLiteStore) SaveGeneticResults(ctx context.Context, results *domain.GeneticResults) error {
	fileInfo, err := json.Marshal(results.FileInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal file info: %w", err)
	}
	summary, err := json.Marshal(results.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `
		INSERT INTO genetic_results (session_id, file_info, findings, summary, analyzed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			file_info = excluded.file_info,
			findings = excluded.findings,
			summary = excluded.summary,
			analyzed_at = excluded.analyzed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		results.SessionID, string(fileInfo), results.Findings, string(summary), results.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("failed to save genetic results: %w", err)
	}
	return nil
}

// GetGeneticResults retrieves the analysis output for a session.
func (s *SQLiteStore) GetGeneticResults(ctx context.Context, sessionID string) (*domain.GeneticResults, error) {
	query := `SELECT session_id, file_info, findings, summary, analyzed_at FROM genetic_results WHERE session_id = ?`

	results := &domain.GeneticResults{}
	var fileInfo, summary string
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&results.SessionID, &fileInfo, &results.Findings, &summary, &results.AnalyzedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("genetic results for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genetic results: %w", err)
	}

	if err := json.Unmarshal([]byte(fileInfo), &results.FileInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file info: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &results.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return results, nil
}

// SaveQuestionnaire stores the raw lifestyle answers for a session.
func (s *SQLiteStore) SaveQuestionnaire(ctx context.Context, q *domain.Questionnaire) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO questionnaires (session_id, answers, submitted_at)
		VALUES (?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			answers = excluded.answers,
			submitted_at = excluded.submitted_at
	`

	_, err = s.db.ExecContext(ctx, query, q.SessionID, string(answers), q.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save questionnaire: %w", err)
	}
	return nil
}

// GetQuestionnaire retrieves the lifestyle answers for a session.
func (s *SQLiteStore) GetQuestionnaire(ctx context.Context, sessionID string) (*domain.Questionnaire, error) {
	query := `SELECT session_id, answers, submitted_at FROM questionnaires WHERE session_id = ?`

	q := &domain.Questionnaire{}
	var answers string
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&q.SessionID, &answers, &q.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("questionnaire for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}

	if err := json.Unmarshal([]byte(answers), &q.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return q, nil
}

// SaveRecommendations stores the synthesized bundle for a session.
func (s *SQLiteStore) SaveRecommendations(ctx context.Context, recs *domain.StoredRecommendations) error {
	bundle, err := json.Marshal(recs.Bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	query := `
		INSERT INTO recommendations (session_id, bundle, generated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			bundle = excluded.bundle,
			generated_at = excluded.generated_at
	`

	_, err = s.db.ExecContext(ctx, query, recs.SessionID, string(bundle), recs.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}
	return nil
}

// GetRecommendations retrieves the synthesized bundle for a session.
func (s *SQLiteStore) GetRecommendations(ctx context.Context, sessionID string) (*domain.StoredRecommendations, error) {
	query := `SELECT session_id, bundle, generated_at FROM recommendations WHERE session_id = ?`

	recs := &domain.StoredRecommendations{}
	var bundle string
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&recs.SessionID, &bundle, &recs.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recommendations for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	if err := json.Unmarshal([]byte(bundle), &recs.Bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	return recs, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// PurgeOlderThan deletes sessions (and derived rows) last updated
// before the cutoff. Used by the retention sweep.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM sessions WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate stale sessions: %w", err)
	}

	var purged int64
	for _, id := range ids {
		if err := s.DeleteSession(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
