package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/pokedex/internal/config"
)

// NewClient builds the configured provider. An empty provider selects
// gemini. Providers that need a key return ErrNoCredential without one.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, ErrNoCredential
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "claude":
		if cfg.APIKey == "" {
			return nil, ErrNoCredential
		}
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		return NewOllamaClient(cfg.Model, cfg.BaseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
