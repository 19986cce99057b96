package mealplan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigenomics-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testRequest() *domain.MealPlanRequest {
	profile, _ := domain.NewLifestyleProfile(map[string]interface{}{
		"diet_type":       "vegetarian",
		"activity_level":  "active",
		"known_allergies": []interface{}{"peanuts"},
	})
	bundle := domain.NewRecommendationBundle()
	bundle.HighPriority = append(bundle.HighPriority, domain.RecommendationItem{Category: "Vitamin B12"})
	bundle.FoodsToIncrease = []string{"Leafy greens, legumes"}
	bundle.FoodsToLimit = []string{"Regular dairy products"}

	return &domain.MealPlanRequest{
		Summary:         domain.RiskSummary{Analyzed: 25, High: 1},
		Recommendations: bundle,
		Profile:         profile,
		Days:            3,
	}
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(domain.MealPlanConfig{}, testLogger())

	_, err := client.GenerateMealPlan(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_GenerateMealPlan(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"role":    "assistant",
					"content": `{"days":[{"day":1,"genetic_note":"B12 focus","meals":{}}]}`,
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(domain.MealPlanConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		Model:     "test-model",
		Timeout:   5 * time.Second,
		RateLimit: 100,
	}, testLogger())

	plan, err := client.GenerateMealPlan(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, 3, plan.Days)
	assert.Equal(t, "test-model", plan.GeneratedBy)
	assert.NotEmpty(t, plan.Disclaimer)
	require.Contains(t, plan.Plan, "days")

	// The prompt carries the dietary context.
	messages := gotBody["messages"].([]interface{})
	user := messages[1].(map[string]interface{})["content"].(string)
	assert.Contains(t, user, "vegetarian")
	assert.Contains(t, user, "peanuts")
	assert.Contains(t, user, "Leafy greens, legumes")
	assert.Contains(t, user, "Regular dairy products")
	assert.Contains(t, user, "Vitamin B12")
}

func TestClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(domain.MealPlanConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		RateLimit: 100,
	}, testLogger())

	_, err := client.GenerateMealPlan(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429") || strings.Contains(err.Error(), "status"))
}

func TestClient_InvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Sure! Here is your plan: ..."}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(domain.MealPlanConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		RateLimit: 100,
	}, testLogger())

	_, err := client.GenerateMealPlan(context.Background(), testRequest())
	assert.Error(t, err)
}

func TestClient_DefaultDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(domain.MealPlanConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		RateLimit: 100,
	}, testLogger())

	req := testRequest()
	req.Days = 0
	plan, err := client.GenerateMealPlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Days)
}
