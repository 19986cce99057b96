package domain

import (
	"fmt"
)

// Default values substituted for optional questionnaire fields that were
// not answered.
const (
	DefaultActivityLevel = "moderate"
	DefaultDietType      = "omnivore"
)

// LifestyleProfile holds the structured questionnaire answers used to
// personalize recommendations. Construct it with NewLifestyleProfile so
// documented defaults are applied before the profile reaches the
// synthesizer.
type LifestyleProfile struct {
	Age                int      `json:"age"`
	ActivityLevel      string   `json:"activity_level"`
	DietType           string   `json:"diet_type"`
	CaffeineCupsPerDay int      `json:"caffeine_cups_per_day"`
	AlcoholFrequency   string   `json:"alcohol_frequency"`
	DigestiveIssues    []string `json:"digestive_issues"`
	HealthGoals        []string `json:"health_goals"`
	CurrentSupplements []string `json:"current_supplements"`
	KnownAllergies     []string `json:"known_allergies"`
}

// NewLifestyleProfile builds a profile from raw submitted answers.
// Individually missing fields take their documented defaults
// (activity_level "moderate", diet_type "omnivore", numerics 0, multi
// selects empty). A nil payload or a field of an incompatible type is
// an InvalidProfile condition and fails construction.
func NewLifestyleProfile(answers map[string]interface{}) (*LifestyleProfile, error) {
	if answers == nil {
		return nil, fmt.Errorf("questionnaire answers missing: %w", ErrInvalidProfile)
	}

	p := &LifestyleProfile{
		ActivityLevel:      DefaultActivityLevel,
		DietType:           DefaultDietType,
		AlcoholFrequency:   "not_specified",
		DigestiveIssues:    []string{},
		HealthGoals:        []string{},
		CurrentSupplements: []string{},
		KnownAllergies:     []string{},
	}

	var err error
	if p.Age, err = intField(answers, "age"); err != nil {
		return nil, err
	}
	if p.CaffeineCupsPerDay, err = intField(answers, "caffeine_cups_per_day"); err != nil {
		return nil, err
	}
	if err = stringField(answers, "activity_level", &p.ActivityLevel); err != nil {
		return nil, err
	}
	if err = stringField(answers, "diet_type", &p.DietType); err != nil {
		return nil, err
	}
	if err = stringField(answers, "alcohol_frequency", &p.AlcoholFrequency); err != nil {
		return nil, err
	}
	if p.DigestiveIssues, err = stringSetField(answers, "digestive_issues"); err != nil {
		return nil, err
	}
	if p.HealthGoals, err = stringSetField(answers, "health_goals"); err != nil {
		return nil, err
	}
	if p.CurrentSupplements, err = stringSetField(answers, "current_supplements"); err != nil {
		return nil, err
	}
	if p.KnownAllergies, err = stringSetField(answers, "known_allergies"); err != nil {
		return nil, err
	}

	return p, nil
}

// HasDigestiveIssue reports membership in the digestive-issues set.
func (p *LifestyleProfile) HasDigestiveIssue(issues ...string) bool {
	return containsAny(p.DigestiveIssues, issues)
}

// HasHealthGoal reports membership in the health-goals set.
func (p *LifestyleProfile) HasHealthGoal(goals ...string) bool {
	return containsAny(p.HealthGoals, goals)
}

// TakesSupplement reports membership in the current-supplements set.
func (p *LifestyleProfile) TakesSupplement(supplements ...string) bool {
	return containsAny(p.CurrentSupplements, supplements)
}

// IsPlantBased reports whether the diet excludes the animal-source
// foods several rules fall back on (vegan or vegetarian).
func (p *LifestyleProfile) IsPlantBased() bool {
	return p.DietType == "vegan" || p.DietType == "vegetarian"
}

func containsAny(set []string, candidates []string) bool {
	for _, c := range candidates {
		for _, s := range set {
			if s == c {
				return true
			}
		}
	}
	return false
}

func intField(answers map[string]interface{}, key string) (int, error) {
	raw, ok := answers[key]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers decode as float64.
		return int(v), nil
	default:
		return 0, fmt.Errorf("field %q must be a number, got %T: %w", key, raw, ErrInvalidProfile)
	}
}

func stringField(answers map[string]interface{}, key string, dst *string) error {
	raw, ok := answers[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("field %q must be a string, got %T: %w", key, raw, ErrInvalidProfile)
	}
	if s != "" {
		*dst = s
	}
	return nil
}

func stringSetField(answers map[string]interface{}, key string) ([]string, error) {
	raw, ok := answers[key]
	if !ok || raw == nil {
		return []string{}, nil
	}
	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must contain only strings, got %T: %w", key, item, ErrInvalidProfile)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q must be a list, got %T: %w", key, raw, ErrInvalidProfile)
	}
}
