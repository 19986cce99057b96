package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLifestyleProfile_Defaults(t *testing.T) {
	profile, err := NewLifestyleProfile(map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, 0, profile.Age)
	assert.Equal(t, DefaultActivityLevel, profile.ActivityLevel)
	assert.Equal(t, DefaultDietType, profile.DietType)
	assert.Equal(t, 0, profile.CaffeineCupsPerDay)
	assert.Empty(t, profile.DigestiveIssues)
	assert.Empty(t, profile.HealthGoals)
	assert.Empty(t, profile.CurrentSupplements)
}

func TestNewLifestyleProfile_NilAnswers(t *testing.T) {
	_, err := NewLifestyleProfile(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestNewLifestyleProfile_FullAnswers(t *testing.T) {
	profile, err := NewLifestyleProfile(map[string]interface{}{
		"age":                   float64(42),
		"activity_level":        "active",
		"diet_type":             "vegetarian",
		"caffeine_cups_per_day": float64(3),
		"alcohol_frequency":     "occasional",
		"digestive_issues":      []interface{}{"bloating", "gas"},
		"health_goals":          []interface{}{"weight_loss"},
		"current_supplements":   []interface{}{"vitamin_d", "iron"},
		"known_allergies":       []interface{}{"peanuts"},
	})
	require.NoError(t, err)

	assert.Equal(t, 42, profile.Age)
	assert.Equal(t, "active", profile.ActivityLevel)
	assert.Equal(t, "vegetarian", profile.DietType)
	assert.Equal(t, 3, profile.CaffeineCupsPerDay)
	assert.Equal(t, "occasional", profile.AlcoholFrequency)
	assert.True(t, profile.HasDigestiveIssue("bloating"))
	assert.True(t, profile.HasDigestiveIssue("diarrhea", "gas"))
	assert.False(t, profile.HasDigestiveIssue("heartburn"))
	assert.True(t, profile.HasHealthGoal("weight_loss"))
	assert.True(t, profile.TakesSupplement("iron"))
	assert.True(t, profile.IsPlantBased())
}

func TestNewLifestyleProfile_WrongTypes(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]interface{}
	}{
		{
			name:    "Age as string",
			answers: map[string]interface{}{"age": "forty"},
		},
		{
			name:    "Diet type as number",
			answers: map[string]interface{}{"diet_type": float64(3)},
		},
		{
			name:    "Goals as string",
			answers: map[string]interface{}{"health_goals": "weight_loss"},
		},
		{
			name:    "Goal entry as number",
			answers: map[string]interface{}{"health_goals": []interface{}{float64(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLifestyleProfile(tt.answers)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestLifestyleProfile_IsPlantBased(t *testing.T) {
	for diet, want := range map[string]bool{
		"vegan":      true,
		"vegetarian": true,
		"omnivore":   false,
		"keto":       false,
	} {
		profile, err := NewLifestyleProfile(map[string]interface{}{"diet_type": diet})
		require.NoError(t, err)
		assert.Equal(t, want, profile.IsPlantBased(), "diet %q", diet)
	}
}
