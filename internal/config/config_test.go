package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0000000000000000000000000000000000000000000000000000000000000000"

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, int64(52428800), cfg.Upload.MaxSizeBytes)
	assert.Contains(t, cfg.Upload.AllowedExts, ".txt")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, m.MealPlanEnabled())
}

func TestManager_EnvironmentOverrides(t *testing.T) {
	t.Setenv("NUTRI_SERVER_PORT", "9090")
	t.Setenv("NUTRI_STORAGE_DRIVER", "postgres")
	t.Setenv("NUTRI_MEAL_PLAN_API_KEY", "gsk_test")

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, m.MealPlanEnabled())
}

func TestManager_EncryptionKeyFromEnvironment(t *testing.T) {
	t.Setenv("NUTRI_ENCRYPTION_KEY", testKey)

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, testKey, m.GetConfig().Encryption.Key)
}

func TestManager_Validate(t *testing.T) {
	t.Setenv("NUTRI_ENCRYPTION_KEY", testKey)

	m, err := NewManager()
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
}

func TestManager_Validate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "Missing encryption key",
			env:     map[string]string{},
			wantMsg: "encryption key",
		},
		{
			name: "Bad storage driver",
			env: map[string]string{
				"NUTRI_ENCRYPTION_KEY": testKey,
				"NUTRI_STORAGE_DRIVER": "mongodb",
			},
			wantMsg: "storage driver",
		},
		{
			name: "Bad log level",
			env: map[string]string{
				"NUTRI_ENCRYPTION_KEY": testKey,
				"NUTRI_LOGGING_LEVEL":  "verbose",
			},
			wantMsg: "log level",
		},
		{
			name: "Bad cache backend",
			env: map[string]string{
				"NUTRI_ENCRYPTION_KEY": testKey,
				"NUTRI_CACHE_BACKEND":  "memcached",
			},
			wantMsg: "cache backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			m, err := NewManager()
			require.NoError(t, err)

			err = m.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantMsg),
				"error %q should mention %q", err.Error(), tt.wantMsg)
		})
	}
}
