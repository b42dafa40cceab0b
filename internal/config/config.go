package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

// Config is read once at startup and passed explicitly to every component
// that needs credentials or base URLs.
type Config struct {
	Port string

	LLM      LLMConfig
	Amadeus  AmadeusConfig
	Places   PlacesConfig
	Pipeline PipelineConfig

	PostgresURL string
}

type LLMConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	SiteURL   string
	AppName   string
	MaxTokens int
}

type AmadeusConfig struct {
	APIKey          string
	APISecret       string
	BaseURL         string
	OffersPerSecond float64
}

type PlacesConfig struct {
	APIKey  string
	BaseURL string
}

type PipelineConfig struct {
	// Concurrency bounds how many independent stages run at once. 1 keeps the
	// canonical sequential order.
	Concurrency int
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env file: %v", err)
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from a lookup function, usually os.Getenv.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	provider := strings.ToLower(get("LLM_PROVIDER", ProviderOpenRouter))

	llm := LLMConfig{
		Provider:  provider,
		SiteURL:   get("SITE_URL", "http://localhost:8000"),
		AppName:   get("APP_NAME", "Travel Planner"),
		MaxTokens: atoiDefault(get("LLM_MAX_TOKENS", ""), 4000),
	}
	switch provider {
	case ProviderGemini:
		llm.APIKey = get("GEMINI_API_KEY", "")
		llm.Model = get("LLM_MODEL", "gemini-1.5-flash")
	case ProviderOpenAI:
		llm.APIKey = get("OPENAI_API_KEY", "")
		llm.BaseURL = get("LLM_BASE_URL", "https://api.openai.com/v1")
		llm.Model = get("LLM_MODEL", "gpt-4o-mini")
	default:
		llm.APIKey = get("OPENROUTER_API_KEY", "")
		llm.BaseURL = get("LLM_BASE_URL", "https://openrouter.ai/api/v1")
		llm.Model = get("LLM_MODEL", "openai/gpt-4-turbo-preview")
	}

	offers, err := strconv.ParseFloat(get("HOTEL_OFFERS_PER_SECOND", "5"), 64)
	if err != nil || offers <= 0 {
		offers = 5
	}

	concurrency := atoiDefault(get("PIPELINE_CONCURRENCY", ""), 4)
	if concurrency < 1 {
		concurrency = 1
	}

	return Config{
		Port: get("PORT", "8000"),
		LLM:  llm,
		Amadeus: AmadeusConfig{
			APIKey:          get("AMADEUS_API_KEY", ""),
			APISecret:       get("AMADEUS_API_SECRET", ""),
			BaseURL:         strings.TrimRight(get("AMADEUS_BASE_URL", "https://test.api.amadeus.com"), "/"),
			OffersPerSecond: offers,
		},
		Places: PlacesConfig{
			APIKey:  get("GOOGLE_PLACES_API_KEY", ""),
			BaseURL: strings.TrimRight(get("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com"), "/"),
		},
		Pipeline:    PipelineConfig{Concurrency: concurrency},
		PostgresURL: get("POSTGRES_URL", ""),
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
