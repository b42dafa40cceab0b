package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "openai/gpt-4-turbo-preview", cfg.LLM.Model)
	assert.Equal(t, "Travel Planner", cfg.LLM.AppName)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
	assert.Equal(t, 5.0, cfg.Amadeus.OffersPerSecond)
	assert.Equal(t, "https://maps.googleapis.com", cfg.Places.BaseURL)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Empty(t, cfg.PostgresURL)
}

func TestFromEnv_GeminiProvider(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"LLM_PROVIDER":   "Gemini",
		"GEMINI_API_KEY": "g-key",
	}))

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.BaseURL)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"PIPELINE_CONCURRENCY":    "0",
		"HOTEL_OFFERS_PER_SECOND": "fast",
		"AMADEUS_BASE_URL":        "http://localhost:9999/",
	}))

	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, 5.0, cfg.Amadeus.OffersPerSecond)
	assert.Equal(t, "http://localhost:9999", cfg.Amadeus.BaseURL)
}
