package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"JWT_SECRET": "s3cret"}))

	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "localhost", cfg.PostgresAddress)
	assert.Equal(t, "5433", cfg.PostgresPort)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, 4, cfg.OperatorWorkers)
	assert.False(t, cfg.AutoMigrate)
	assert.False(t, cfg.AIEnabled())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":       "s3cret",
		"PORT":             "8080",
		"AUTO_MIGRATE":     "true",
		"OPENAI_API_KEY":   "sk-test",
		"AI_TIMEOUT":       "5s",
		"CURRENCY":         "eur",
		"OPERATOR_WORKERS": "2",
	}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 2, cfg.OperatorWorkers)
}

func TestFromLookup_MissingJWTSecret(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{}))

	assert.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, cfg)
}

func TestFromLookup_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"AI_TIMEOUT":       "soon",
		"OPERATOR_WORKERS": "0",
		"AUTO_MIGRATE":     "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{"JWT_SECRET": "x", key: value}))
			assert.Error(t, err)
		})
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := &Config{
		PostgresAddress:  "db",
		PostgresPort:     "5432",
		PostgresDB:       "budget",
		PostgresUsername: "app",
		PostgresPassword: "p@ss",
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/budget?sslmode=disable", cfg.PostgresURL())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.PostgresURL())
}
