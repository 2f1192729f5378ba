package classifier

import (
	"context"

	"sentinel-dashboard/internal/models"
)

// Classifier produces an analysis judgment for a single message text.
// Implementations return an error only when no usable result could be
// produced; the caller substitutes the neutral fallback in that case.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.AnalysisResult, error)
	Name() string
}

// Normalize enforces the result schema bounds: sentiment clamped to
// [-1.0, 1.0] and an empty topic replaced with "Unknown".
func Normalize(r models.AnalysisResult) models.AnalysisResult {
	if r.SentimentScore > 1.0 {
		r.SentimentScore = 1.0
	}
	if r.SentimentScore < -1.0 {
		r.SentimentScore = -1.0
	}
	if r.PrimaryTopic == "" {
		r.PrimaryTopic = "Unknown"
	}
	return r
}
