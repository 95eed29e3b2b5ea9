package ai

import (
	"context"
)

// SentimentAnalyzer defines methods for AI sentiment analysis
type SentimentAnalyzer interface {
	// AnalyzeSentiment analyzes market sentiment from aggregated social data,
	// returning a score in [-1, 1]
	AnalyzeSentiment(ctx context.Context, socialData map[string]string) (float64, error)
}
