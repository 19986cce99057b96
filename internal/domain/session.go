package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks how far a subject's workflow has progressed.
type SessionStatus string

const (
	StatusUploaded               SessionStatus = "uploaded"
	StatusAnalyzed               SessionStatus = "analyzed"
	StatusQuestionnaireCompleted SessionStatus = "questionnaire_completed"
	StatusComplete               SessionStatus = "complete"
)

// Session tracks the state of one subject's analysis workflow. The
// uploaded raw file stays on disk at Filepath until the session is
// deleted.
type Session struct {
	ID               string        `json:"session_id"`
	Filepath         string        `json:"-"`
	OriginalFilename string        `json:"original_filename"`
	FileSizeBytes    int64         `json:"file_size_bytes"`
	Status           SessionStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	HasGeneticResults  bool `json:"has_genetic_results"`
	HasQuestionnaire   bool `json:"has_questionnaire"`
	HasRecommendations bool `json:"has_recommendations"`
}

// NewSession creates a session for a freshly uploaded file.
func NewSession(filepath, filename string, size int64) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:               uuid.New().String(),
		Filepath:         filepath,
		OriginalFilename: filename,
		FileSizeBytes:    size,
		Status:           StatusUploaded,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Advance moves the session to the given status and touches UpdatedAt.
func (s *Session) Advance(status SessionStatus) {
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
}

// FileInfo describes the parsed raw genotype file.
type FileInfo struct {
	Source   string `json:"source"`
	SNPCount int    `json:"snp_count"`
	Build    int    `json:"build"`
}

// GeneticResults is the persisted output of one analysis run. Sensitive
// finding fields travel through the store encrypted; the risk summary
// stays plaintext for listing endpoints.
type GeneticResults struct {
	SessionID  string      `json:"session_id"`
	FileInfo   FileInfo    `json:"file_info"`
	Findings   []byte      `json:"-"` // encrypted finding list
	Summary    RiskSummary `json:"summary"`
	AnalyzedAt time.Time   `json:"analyzed_at"`
}

// Questionnaire is the raw lifestyle answers submitted for a session.
// The LifestyleProfile is constructed from Answers at synthesis time so
// defaulting stays in one place.
type Questionnaire struct {
	SessionID   string                 `json:"session_id"`
	Answers     map[string]interface{} `json:"answers"`
	SubmittedAt time.Time              `json:"submitted_at"`
}

// StoredRecommendations is the persisted recommendation bundle for a
// session.
type StoredRecommendations struct {
	SessionID   string                `json:"session_id"`
	Bundle      *RecommendationBundle `json:"recommendations"`
	GeneratedAt time.Time             `json:"generated_at"`
}
