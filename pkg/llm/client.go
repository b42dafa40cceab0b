// Package llm provides the text-generation backends used by the planning stages.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// Config selects and configures one backend. SiteURL and AppName are sent
// as attribution headers to OpenRouter only.
type Config struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	SiteURL   string
	AppName   string
	MaxTokens int
}

var (
	ErrMissingAPIKey = errors.New("llm api key not configured")
	ErrEmptyResponse = errors.New("llm returned no content")
)

type Request struct {
	System string
	Prompt string
	// JSON asks the backend for a bare JSON object when it supports it.
	JSON        bool
	Temperature float32
	MaxTokens   int
}

type GeneratorInterface interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a plain function to GeneratorInterface.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// New builds the backend selected by cfg.Provider.
func New(ctx context.Context, cfg Config) (GeneratorInterface, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for provider %s", ErrMissingAPIKey, cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderGemini:
		log.Printf("LLM backend: gemini (%s)", cfg.Model)
		return NewGeminiClient(ctx, cfg)
	case ProviderOpenAI, ProviderOpenRouter:
		log.Printf("LLM backend: %s (%s) via %s", cfg.Provider, cfg.Model, cfg.BaseURL)
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

func withDefaults(req Request, maxTokens int) Request {
	if req.Temperature == 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = maxTokens
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	return req
}
