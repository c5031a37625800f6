package ai

import (
	"context"
	"fmt"

	"resumelift/internal/config"
	"resumelift/internal/enhance"
	"resumelift/internal/errors"

	"google.golang.org/genai"
)

// NewProviders builds one rewriter per configured model, in the order they
// should be tried by the enhancement chain. With no API key configured the
// chain runs on local fallbacks alone, so an empty slice is returned rather
// than an error.
func NewProviders(cfg *config.AIConfig, logger *errors.Logger) ([]enhance.Rewriter, error) {
	rewriters, err := NewGeminiProviders(cfg, logger)
	if err != nil || len(rewriters) == 0 {
		return nil, err
	}

	providers := make([]enhance.Rewriter, 0, len(rewriters))
	for _, r := range rewriters {
		providers = append(providers, r)
	}
	return providers, nil
}

// NewGeminiProviders is NewProviders with the concrete type exposed, for
// callers that also need model health checks and circuit breaker stats.
func NewGeminiProviders(cfg *config.AIConfig, logger *errors.Logger) ([]*GeminiRewriter, error) {
	if cfg.APIKey == "" {
		logger.Debug("No AI API key configured, running with local fallbacks only")
		return nil, nil
	}

	if cfg.Provider != "gemini" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	logger.Debug("Initializing AI providers",
		"provider", cfg.Provider,
		"models", cfg.Models,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	rewriters := make([]*GeminiRewriter, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		rewriters = append(rewriters, NewGeminiRewriter(client, model, cfg, logger))
	}

	return rewriters, nil
}
