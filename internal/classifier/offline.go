package classifier

import (
	"context"
	"math/rand"
	"time"

	"sentinel-dashboard/internal/models"

	"go.uber.org/zap"
)

// OfflineTopics is the fixed topic set the synthetic classifier draws from.
var OfflineTopics = []string{"General", "Help", "Gaming", "Off-topic"}

// offlineToxicRate is the probability a synthetic result is flagged toxic.
const offlineToxicRate = 0.1

// DefaultOfflineLatency emulates the network round-trip of a real
// classification call so the feed behaves realistically in demo mode.
const DefaultOfflineLatency = 800 * time.Millisecond

// OfflineClient produces synthetic analysis results without any external
// calls. Used when no API key is configured or offline mode is forced.
type OfflineClient struct {
	logger  *zap.Logger
	latency time.Duration
}

// NewOfflineClient creates a synthetic classifier. A latency of 0 selects
// the default emulated delay; pass a negative value to disable the delay.
func NewOfflineClient(latency time.Duration, logger *zap.Logger) *OfflineClient {
	if latency == 0 {
		latency = DefaultOfflineLatency
	}
	if latency < 0 {
		latency = 0
	}
	return &OfflineClient{
		logger:  logger,
		latency: latency,
	}
}

// Name returns the provider identifier.
func (c *OfflineClient) Name() string {
	return "offline"
}

// Classify returns a random in-bounds result after the emulated latency.
// It never fails.
func (c *OfflineClient) Classify(ctx context.Context, text string) (models.AnalysisResult, error) {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
		}
	}

	result := models.AnalysisResult{
		SentimentScore: rand.Float64()*2 - 1,
		PrimaryTopic:   OfflineTopics[rand.Intn(len(OfflineTopics))],
		IsToxic:        rand.Float64() < offlineToxicRate,
	}

	c.logger.Debug("Synthetic analysis produced",
		zap.Float64("sentiment", result.SentimentScore),
		zap.String("topic", result.PrimaryTopic))

	return result, nil
}
