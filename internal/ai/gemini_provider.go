package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumescan/internal/config"
	scanerrors "resumescan/internal/errors"
	"resumescan/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.AIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *scanerrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(cfg *config.AIConfig, logger *scanerrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, scanerrors.NewAIError(scanerrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(cfg, logger),
		logger:         logger,
	}, nil
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
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
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
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
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
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
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

// EnhanceRecommendations implements AIProvider for the enhancement pass
func (g *GeminiProvider) EnhanceRecommendations(ctx context.Context, input types.EnhanceInput) (types.EnhanceOutput, *TokenUsage, error) {
	tracer := otel.Tracer("resumescan.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.enhance_recommendations")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.Int("input.recommendations", len(input.Recommendations)),
	)

	genaiConfig := g.buildEnhanceSchema()

	systemPrompt := resolvePrompt(g.config.SystemPrompt, DefaultSystemPrompt)
	if systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	userPrompt := fmt.Sprintf(resolvePrompt(g.config.UserPrompt, DefaultUserPromptTemplate),
		input.ResumeText,
		input.JobDescription,
		strings.Join(input.Feedback, "\n"),
		strings.Join(input.Recommendations, "\n"),
		g.config.MaxSuggestions,
	)

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, "enhance_recommendations", func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.EnhanceOutput{}, nil, scanerrors.NewAIError(scanerrors.ErrCodeAIServiceFailed,
			"Failed to generate enhancement suggestions", err)
	}

	var output types.EnhanceOutput
	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.EnhanceOutput{}, nil, scanerrors.NewAIError("AI_RESPONSE_PARSE_FAILED",
			"Failed to parse AI enhancement response", err)
	}

	// The schema can't bound array length, so enforce the cap here.
	if g.config.MaxSuggestions > 0 && len(output.Suggestions) > g.config.MaxSuggestions {
		output.Suggestions = output.Suggestions[:g.config.MaxSuggestions]
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.suggestions", len(output.Suggestions)),
	)
	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildEnhanceSchema creates the response schema for enhancement requests
func (g *GeminiProvider) buildEnhanceSchema() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"suggestions": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"suggestions"},
		},
	}

	if g.config.Temperature > 0 {
		temp := g.config.Temperature
		cfg.Temperature = &temp
	}

	return cfg
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
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
