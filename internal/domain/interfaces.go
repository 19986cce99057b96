package domain

import (
	"context"
)

// GenotypeSource supplies the observed genotype for an rsID. Implemented
// by the raw-file parser; the core treats it as an opaque lookup. The
// second return is false when the file carries no usable call for the
// SNP (absent, blank, or a no-call placeholder).
type GenotypeSource interface {
	Genotype(rsid string) (string, bool)
}

// Store persists sessions and their derived artifacts keyed by session
// identifier. Implementations exist for SQLite and PostgreSQL.
type Store interface {
	SaveSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SaveGeneticResults(ctx context.Context, results *GeneticResults) error
	GetGeneticResults(ctx context.Context, sessionID string) (*GeneticResults, error)

	SaveQuestionnaire(ctx context.Context, q *Questionnaire) error
	GetQuestionnaire(ctx context.Context, sessionID string) (*Questionnaire, error)

	SaveRecommendations(ctx context.Context, recs *StoredRecommendations) error
	GetRecommendations(ctx context.Context, sessionID string) (*StoredRecommendations, error)

	Close() error
}

// FieldEncryptor seals and opens the sensitive finding fields around the
// store. The core only ever sees plaintext; the encryptor is passed as
// an explicit dependency to the boundary layer.
type FieldEncryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// ResultCache memoizes analysis results for already-analyzed sessions.
// Caching is a boundary concern; the analyzer itself holds no cross-call
// state.
type ResultCache interface {
	Get(ctx context.Context, sessionID string) (*GeneticResults, bool)
	Set(ctx context.Context, sessionID string, results *GeneticResults) error
	Delete(ctx context.Context, sessionID string) error
}

// MealPlanner generates a free-text meal plan from the synthesized
// recommendations via an external language-model service.
type MealPlanner interface {
	GenerateMealPlan(ctx context.Context, req *MealPlanRequest) (*MealPlan, error)
}

// MealPlanRequest carries everything the planner needs to build its
// prompt.
type MealPlanRequest struct {
	Summary         RiskSummary           `json:"genetic_summary"`
	Recommendations *RecommendationBundle `json:"recommendations"`
	Profile         *LifestyleProfile     `json:"profile"`
	Days            int                   `json:"days"`
}

// MealPlan is the structured plan returned by the external service.
type MealPlan struct {
	Days        int                    `json:"days"`
	Plan        map[string]interface{} `json:"meal_plan"`
	GeneratedBy string                 `json:"generated_by"`
	Disclaimer  string                 `json:"disclaimer"`
}
