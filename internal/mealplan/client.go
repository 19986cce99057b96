// Package mealplan generates personalized meal plans through an
// OpenAI-compatible chat completion API (Groq by default). The client
// carries a rate limiter and a circuit breaker; a misbehaving upstream
// degrades to the static fallback advice instead of taking request
// handlers down with it.
package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nutrigenomics-server/internal/domain"
)

const (
	systemPrompt = "You are a nutrigenomics expert who creates personalized meal plans. You MUST respond with valid JSON only, no additional text."

	disclaimer = "This meal plan is AI-generated based on your genetic profile and should be reviewed with a healthcare professional or registered dietitian."
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = fmt.Errorf("meal planner is not configured")

// Client implements domain.MealPlanner against a chat completion
// endpoint with JSON response formatting.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

// NewClient builds a meal-plan client from configuration. Zero values
// get usable defaults; an empty API key produces a client whose calls
// fail with ErrNotConfigured.
func NewClient(cfg domain.MealPlanConfig, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 0.5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MealPlanAPI",
		MaxRequests: 2,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rateLimit:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		breaker:    breaker,
		log:        logger,
	}
}

// chat completion request/response wire types (OpenAI-compatible).
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateMealPlan builds the prompt from the synthesized
// recommendations and asks the model for a structured plan.
func (c *Client) GenerateMealPlan(ctx context.Context, req *domain.MealPlanRequest) (*domain.MealPlan, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if req.Days <= 0 {
		req.Days = 3
	}

	if err := c.rateLimit.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, buildPrompt(req))
	})
	if err != nil {
		return nil, fmt.Errorf("meal plan generation failed: %w", err)
	}

	var plan map[string]interface{}
	if err := json.Unmarshal([]byte(result.(string)), &plan); err != nil {
		c.log.WithError(err).Warn("Meal plan response was not valid JSON")
		return nil, fmt.Errorf("failed to parse meal plan response: %w", err)
	}

	return &domain.MealPlan{
		Days:        req.Days,
		Plan:        plan,
		GeneratedBy: c.model,
		Disclaimer:  disclaimer,
	}, nil
}

// complete performs one chat completion call and returns the raw
// message content.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	body.ResponseFormat.Type = "json_object"

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("upstream returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// buildPrompt renders the user prompt from profile and
// recommendations. Lists are truncated so the prompt stays within the
// model's context comfortably.
func buildPrompt(req *domain.MealPlanRequest) string {
	p := req.Profile
	bundle := req.Recommendations

	var concerns []string
	for i, rec := range bundle.HighPriority {
		if i == 3 {
			break
		}
		concerns = append(concerns, rec.Category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-day personalized meal plan in JSON format.\n\n", req.Days)
	fmt.Fprintf(&b, "**USER PROFILE:**\n")
	fmt.Fprintf(&b, "- Diet Type: %s\n", p.DietType)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Allergies/Intolerances: %s\n", joinOr(p.KnownAllergies, "None"))
	fmt.Fprintf(&b, "- Health Goals: %s\n\n", joinOr(p.HealthGoals, "General wellness"))
	fmt.Fprintf(&b, "**GENETIC INSIGHTS:**\n")
	fmt.Fprintf(&b, "Top Genetic Concerns: %s\n\n", joinOr(concerns, "None identified"))
	fmt.Fprintf(&b, "Foods to PRIORITIZE (based on genetics):\n%s\n\n", bulleted(bundle.FoodsToIncrease, 8, "No specific prioritization"))
	fmt.Fprintf(&b, "Foods to MINIMIZE (based on genetics):\n%s\n\n", bulleted(bundle.FoodsToLimit, 5, "No specific restrictions"))
	fmt.Fprintf(&b, "**INSTRUCTIONS:**\n")
	fmt.Fprintf(&b, "1. Create exactly %d days of meals (breakfast, lunch, dinner, snacks)\n", req.Days)
	fmt.Fprintf(&b, "2. Each meal must align with the %s diet, avoid all listed allergens, emphasize prioritized foods, minimize restricted foods, and match %s activity caloric needs\n", p.DietType, p.ActivityLevel)
	fmt.Fprintf(&b, "3. Include a macronutrient breakdown for each meal (protein, carbs, fats in grams)\n")
	fmt.Fprintf(&b, "4. Add one \"genetic_note\" per day explaining how the meals address the top genetic concern\n\n")
	fmt.Fprintf(&b, "Respond with a JSON object holding a \"days\" array; each day has \"day\", \"genetic_note\", and \"meals\" (breakfast, lunch, dinner, snacks). Return ONLY the JSON object.")
	return b.String()
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func bulleted(items []string, limit int, fallback string) string {
	if len(items) == 0 {
		return "- " + fallback
	}
	if len(items) > limit {
		items = items[:limit]
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}
