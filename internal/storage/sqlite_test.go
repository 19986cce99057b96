package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigenomics-server/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domain.NewSession("/tmp/uploads/genome.txt", "genome.txt", 1024)
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, domain.StatusUploaded, got.Status)
	assert.Equal(t, "genome.txt", got.OriginalFilename)
	assert.Equal(t, int64(1024), got.FileSizeBytes)

	// Advancing and re-saving upserts.
	session.Advance(domain.StatusAnalyzed)
	session.HasGeneticResults = true
	require.NoError(t, store.SaveSession(ctx, session))

	got, err = store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnalyzed, got.Status)
	assert.True(t, got.HasGeneticResults)

	require.NoError(t, store.DeleteSession(ctx, session.ID))
	_, err = store.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_GetSession_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSession(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.DeleteSession(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_GeneticResultsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domain.NewSession("/tmp/genome.txt", "genome.txt", 10)
	require.NoError(t, store.SaveSession(ctx, session))

	results := &domain.GeneticResults{
		SessionID:  session.ID,
		FileInfo:   domain.FileInfo{Source: "23andMe", SNPCount: 631234, Build: 37},
		Findings:   []byte{0x01, 0x02, 0x03}, // opaque ciphertext
		Summary:    domain.RiskSummary{Analyzed: 25, Low: 20, Moderate: 3, High: 1, Protective: 1},
		AnalyzedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveGeneticResults(ctx, results))

	got, err := store.GetGeneticResults(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, results.Findings, got.Findings)
	assert.Equal(t, results.FileInfo, got.FileInfo)
	assert.Equal(t, results.Summary, got.Summary)

	_, err = store.GetGeneticResults(ctx, "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_QuestionnaireRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domain.NewSession("/tmp/genome.txt", "genome.txt", 10)
	require.NoError(t, store.SaveSession(ctx, session))

	q := &domain.Questionnaire{
		SessionID: session.ID,
		Answers: map[string]interface{}{
			"diet_type":        "vegan",
			"age":              float64(30),
			"digestive_issues": []interface{}{"bloating"},
		},
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveQuestionnaire(ctx, q))

	got, err := store.GetQuestionnaire(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "vegan", got.Answers["diet_type"])
	assert.Equal(t, float64(30), got.Answers["age"])
}

func TestSQLiteStore_RecommendationsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domain.NewSession("/tmp/genome.txt", "genome.txt", 10)
	require.NoError(t, store.SaveSession(ctx, session))

	bundle := domain.NewRecommendationBundle()
	bundle.HighPriority = append(bundle.HighPriority, domain.RecommendationItem{
		Category:       "Dairy/Lactose",
		GeneticBasis:   "Lactose Intolerance - CC",
		Recommendation: "Limit dairy",
	})
	bundle.FoodsToLimit = []string{"Regular dairy products"}

	recs := &domain.StoredRecommendations{
		SessionID:   session.ID,
		Bundle:      bundle,
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveRecommendations(ctx, recs))

	got, err := store.GetRecommendations(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, got.Bundle.HighPriority, 1)
	assert.Equal(t, "Dairy/Lactose", got.Bundle.HighPriority[0].Category)
	assert.Equal(t, []string{"Regular dairy products"}, got.Bundle.FoodsToLimit)
}

func TestSQLiteStore_DeleteCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domain.NewSession("/tmp/genome.txt", "genome.txt", 10)
	require.NoError(t, store.SaveSession(ctx, session))
	require.NoError(t, store.SaveGeneticResults(ctx, &domain.GeneticResults{
		SessionID: session.ID, Findings: []byte{0x01}, AnalyzedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.SaveQuestionnaire(ctx, &domain.Questionnaire{
		SessionID: session.ID, Answers: map[string]interface{}{}, SubmittedAt: time.Now().UTC(),
	}))

	require.NoError(t, store.DeleteSession(ctx, session.ID))

	_, err := store.GetGeneticResults(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetQuestionnaire(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_PurgeOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stale := domain.NewSession("/tmp/a.txt", "a.txt", 1)
	stale.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	stale.UpdatedAt = stale.CreatedAt
	require.NoError(t, store.SaveSession(ctx, stale))

	fresh := domain.NewSession("/tmp/b.txt", "b.txt", 1)
	require.NoError(t, store.SaveSession(ctx, fresh))

	purged, err := store.PurgeOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.GetSession(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetSession(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemoryCache(t *testing.T) {
	cache, err := NewMemoryCache(8)
	require.NoError(t, err)
	ctx := context.Background()

	results := &domain.GeneticResults{SessionID: "abc", Findings: []byte{0x01}}
	require.NoError(t, cache.Set(ctx, "abc", results))

	got, ok := cache.Get(ctx, "abc")
	require.True(t, ok)
	assert.Equal(t, results, got)

	require.NoError(t, cache.Delete(ctx, "abc"))
	_, ok = cache.Get(ctx, "abc")
	assert.False(t, ok)
}

func TestMemoryCache_Eviction(t *testing.T) {
	cache, err := NewMemoryCache(2)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, id, &domain.GeneticResults{SessionID: id}))
	}

	// Oldest entry is evicted once capacity is exceeded.
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "c")
	assert.True(t, ok)
}
