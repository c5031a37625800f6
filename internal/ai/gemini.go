package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumelift/internal/config"
	"resumelift/internal/enhance"
	apperrors "resumelift/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiRewriter asks a single Gemini model to rewrite resume text. The
// enhancement chain holds one rewriter per configured model and tries them
// in order.
type GeminiRewriter struct {
	client       *genai.Client
	model        string
	config       *config.AIConfig
	breaker      *RewriteCircuitBreaker
	modelBreaker *ModelCircuitBreaker
	logger       *apperrors.Logger
}

// Ensure GeminiRewriter implements enhance.Rewriter
var _ enhance.Rewriter = (*GeminiRewriter)(nil)

// NewGeminiRewriter creates a rewriter for one model, sharing the client
// across models so connection state is reused
func NewGeminiRewriter(client *genai.Client, model string, cfg *config.AIConfig, logger *apperrors.Logger) *GeminiRewriter {
	return &GeminiRewriter{
		client:       client,
		model:        model,
		config:       cfg,
		breaker:      NewRewriteCircuitBreaker(model, cfg.CircuitBreaker, logger),
		modelBreaker: NewModelCircuitBreaker(model, cfg.CircuitBreaker, logger),
		logger:       logger,
	}
}

// Name returns the model identifier used in strategy reporting
func (g *GeminiRewriter) Name() string {
	return g.model
}

// Rewrite sends the prompt to the model and returns the rewritten resume text
func (g *GeminiRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	text, _, err := g.RewriteWithUsage(ctx, prompt)
	return text, err
}

// RewriteWithUsage is Rewrite plus the token usage reported by the API, for
// callers that record usage metrics
func (g *GeminiRewriter) RewriteWithUsage(ctx context.Context, prompt string) (string, *TokenUsage, error) {
	tracer := otel.Tracer("resumelift.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.rewrite")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Int("input.prompt_length", len(prompt)),
	)

	genConfig := &genai.GenerateContentConfig{}
	if g.config.Temperature > 0 {
		temp := g.config.Temperature
		genConfig.Temperature = &temp
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	result, err := g.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to generate rewrite with "+g.model, err)
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}

	text := result.Text()
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.text_length", len(text)),
	)

	return text, usage, nil
}

// executeWithRetry executes a model call with retry logic and exponential backoff
func (g *GeminiRewriter) executeWithRetry(ctx context.Context, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying rewrite",
				"model", g.model,
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Rewrite succeeded after retry",
					"model", g.model,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"model", g.model,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "Rewrite failed after all retry attempts",
		"model", g.model,
		"total_attempts", g.config.MaxRetries+1)

	return nil, fmt.Errorf("rewrite with %s failed after %d retries: %w", g.model, g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection issues) are retryable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors with transient HTTP status codes
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiRewriter) GetModelInfo(ctx context.Context, checkTimeout time.Duration) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.model,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.model,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiRewriter) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"rewrite_operations": g.breaker.GetStats(),
		"model_operations":   g.modelBreaker.GetModelStats(),
	}

	stats["overall_healthy"] = g.breaker.IsHealthy() && g.modelBreaker.IsModelHealthy()

	return stats
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from a Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
