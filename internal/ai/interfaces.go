package ai

import (
	"context"

	"resumescan/internal/types"
)

// AIProvider interface for different AI implementations.
// EnhanceRecommendations returns token usage information - callers can ignore it if not needed.
type AIProvider interface {
	EnhanceRecommendations(ctx context.Context, input types.EnhanceInput) (types.EnhanceOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
