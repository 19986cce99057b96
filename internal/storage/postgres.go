package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/domain"
)

// PostgresStore implements domain.Store on a pgx connection pool. The
// schema is managed by migrations (internal/database), never created
// here.
type PostgresStore struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgresStore wraps an existing pool. The pool stays owned by the
// caller; Close here is a no-op on it.
func NewPostgresStore(db *pgxpool.Pool, logger *logrus.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: logger}
}

// SaveSession inserts or updates a session row.
func (s *PostgresStore) SaveSession(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, filepath, original_filename, file_size_bytes, status,
			has_genetic_results, has_questionnaire, has_recommendations,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			filepath = EXCLUDED.filepath,
			status = EXCLUDED.status,
			has_genetic_results = EXCLUDED.has_genetic_results,
			has_questionnaire = EXCLUDED.has_questionnaire,
			has_recommendations = EXCLUDED.has_recommendations,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.Exec(ctx, query,
		session.ID, session.Filepath, session.OriginalFilename,
		session.FileSizeBytes, string(session.Status),
		session.HasGeneticResults, session.HasQuestionnaire, session.HasRecommendations,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err,
		}).Error("Failed to save session")
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *PostgresStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `
		SELECT id, filepath, original_filename, file_size_bytes, status,
		       has_genetic_results, has_questionnaire, has_recommendations,
		       created_at, updated_at
		FROM sessions WHERE id = $1`

	session := &domain.Session{}
	var status string
	err := s.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID, &session.Filepath, &session.OriginalFilename,
		&session.FileSizeBytes, &status,
		&session.HasGeneticResults, &session.HasQuestionnaire, &session.HasRecommendations,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	session.Status = domain.SessionStatus(status)
	return session, nil
}

// DeleteSession removes a session; derived rows go with it via ON
// DELETE CASCADE.
func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

// SaveGeneticResults stores the (encrypted) analysis output.
func (s *PostgresStore) SaveGeneticResults(ctx context.Context, results *domain.GeneticResults) error {
	fileInfo, err := json.Marshal(results.FileInfo)
	if err != nil {
		return fmt.Errorf("marshaling file info: %w", err)
	}
	summary, err := json.Marshal(results.Summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	query := `
		INSERT INTO genetic_results (session_id, file_info, findings, summary, analyzed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO UPDATE SET
			file_info = EXCLUDED.file_info,
			findings = EXCLUDED.findings,
			summary = EXCLUDED.summary,
			analyzed_at = EXCLUDED.analyzed_at`

	_, err = s.db.Exec(ctx, query, results.SessionID, fileInfo, results.Findings, summary, results.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("saving genetic results: %w", err)
	}
	return nil
}

// GetGeneticResults retrieves the analysis output for a session.
func (s *PostgresStore) GetGeneticResults(ctx context.Context, sessionID string) (*domain.GeneticResults, error) {
	query := `SELECT session_id, file_info, findings, summary, analyzed_at FROM genetic_results WHERE session_id = $1`

	results := &domain.GeneticResults{}
	var fileInfo, summary []byte
	err := s.db.QueryRow(ctx, query, sessionID).Scan(
		&results.SessionID, &fileInfo, &results.Findings, &summary, &results.AnalyzedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("genetic results for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting genetic results: %w", err)
	}

	if err := json.Unmarshal(fileInfo, &results.FileInfo); err != nil {
		return nil, fmt.Errorf("unmarshaling file info: %w", err)
	}
	if err := json.Unmarshal(summary, &results.Summary); err != nil {
		return nil, fmt.Errorf("unmarshaling summary: %w", err)
	}
	return results, nil
}

// SaveQuestionnaire stores the raw lifestyle answers.
func (s *PostgresStore) SaveQuestionnaire(ctx context.Context, q *domain.Questionnaire) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return fmt.Errorf("marshaling answers: %w", err)
	}

	query := `
		INSERT INTO questionnaires (session_id, answers, submitted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			answers = EXCLUDED.answers,
			submitted_at = EXCLUDED.submitted_at`

	_, err = s.db.Exec(ctx, query, q.SessionID, answers, q.SubmittedAt)
	if err != nil {
		return fmt.Errorf("saving questionnaire: %w", err)
	}
	return nil
}

// GetQuestionnaire retrieves the lifestyle answers for a session.
func (s *PostgresStore) GetQuestionnaire(ctx context.Context, sessionID string) (*domain.Questionnaire, error) {
	query := `SELECT session_id, answers, submitted_at FROM questionnaires WHERE session_id = $1`

	q := &domain.Questionnaire{}
	var answers []byte
	err := s.db.QueryRow(ctx, query, sessionID).Scan(&q.SessionID, &answers, &q.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("questionnaire for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting questionnaire: %w", err)
	}

	if err := json.Unmarshal(answers, &q.Answers); err != nil {
		return nil, fmt.Errorf("unmarshaling answers: %w", err)
	}
	return q, nil
}

// SaveRecommendations stores the synthesized bundle.
func (s *PostgresStore) SaveRecommendations(ctx context.Context, recs *domain.StoredRecommendations) error {
	bundle, err := json.Marshal(recs.Bundle)
	if err != nil {
		return fmt.Errorf("marshaling recommendations: %w", err)
	}

	query := `
		INSERT INTO recommendations (session_id, bundle, generated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			bundle = EXCLUDED.bundle,
			generated_at = EXCLUDED.generated_at`

	_, err = s.db.Exec(ctx, query, recs.SessionID, bundle, recs.GeneratedAt)
	if err != nil {
		return fmt.Errorf("saving recommendations: %w", err)
	}
	return nil
}

// GetRecommendations retrieves the synthesized bundle for a session.
func (s *PostgresStore) GetRecommendations(ctx context.Context, sessionID string) (*domain.StoredRecommendations, error) {
	query := `SELECT session_id, bundle, generated_at FROM recommendations WHERE session_id = $1`

	recs := &domain.StoredRecommendations{}
	var bundle []byte
	err := s.db.QueryRow(ctx, query, sessionID).Scan(&recs.SessionID, &bundle, &recs.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("recommendations for session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting recommendations: %w", err)
	}

	if err := json.Unmarshal(bundle, &recs.Bundle); err != nil {
		return nil, fmt.Errorf("unmarshaling recommendations: %w", err)
	}
	return recs, nil
}

// PurgeOlderThan deletes sessions last updated before the cutoff.
func (s *PostgresStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE updated_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging stale sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close is a no-op; the pool lifecycle belongs to the caller.
func (s *PostgresStore) Close() error {
	return nil
}
