package llm_fx

import (
	"context"
	"io"

	"go.uber.org/fx"

	"tripcrew/internal/config"
	"tripcrew/pkg/llm"
)

var Module = fx.Provide(provideGenerator)

// GeneratorConfig maps the service configuration onto the llm backend config.
func GeneratorConfig(cfg config.LLMConfig) llm.Config {
	return llm.Config{
		Provider:  cfg.Provider,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		SiteURL:   cfg.SiteURL,
		AppName:   cfg.AppName,
		MaxTokens: cfg.MaxTokens,
	}
}

func provideGenerator(lc fx.Lifecycle, cfg config.Config) (llm.GeneratorInterface, error) {
	gen, err := llm.New(context.Background(), GeneratorConfig(cfg.LLM))
	if err != nil {
		return nil, err
	}

	if closer, ok := gen.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return gen, nil
}
