package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbaps/Recruit-AI-1/providers"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/recruit")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, providers.Gemini, cfg.DefaultProvider)
	assert.Equal(t, providers.DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, providers.DefaultTemperature, cfg.Temperature)
	assert.Equal(t, "g-key", cfg.APIKey(providers.Gemini))
	assert.Empty(t, cfg.APIKey(providers.OpenAI))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("DEFAULT_AI_PROVIDER", providers.Anthropic)
	t.Setenv("MAX_TOKENS", "512")
	t.Setenv("TEMPERATURE", "1.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, providers.Anthropic, cfg.DefaultProvider)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, 1.5, cfg.Temperature)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing DSN", map[string]string{}},
		{"non-numeric max tokens", map[string]string{"DB_DSN": "dsn", "MAX_TOKENS": "lots"}},
		{"zero max tokens", map[string]string{"DB_DSN": "dsn", "MAX_TOKENS": "0"}},
		{"temperature out of range", map[string]string{"DB_DSN": "dsn", "TEMPERATURE": "2.5"}},
		{"negative temperature", map[string]string{"DB_DSN": "dsn", "TEMPERATURE": "-0.1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAPIKeyLookupIsCaseInsensitive(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("MISTRAL_API_KEY", "m-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "m-key", cfg.APIKey("Mistral"))
	assert.Equal(t, "m-key", cfg.APIKey(" mistral "))
}
