package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sentinel-dashboard/internal/models"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// SystemInstruction is the fixed instruction sent with every request.
const SystemInstruction = "You are Sentinel, an automated moderation bot. " +
	"Analyze messages strictly. Sentiment ranges from -1.0 to 1.0. " +
	"Topics should be concise categories."

// GeminiClient wraps the Gemini API for message analysis.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	logger    *zap.Logger
	modelName string
}

// GeminiConfig for the Gemini classifier.
type GeminiConfig struct {
	APIKey    string
	ModelName string // Default: "gemini-2.5-flash"
}

// NewGeminiClient creates a Gemini-backed classifier.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.ModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}

	// Force a structured JSON reply with exactly the three analysis fields.
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sentiment_score": {
				Type:        genai.TypeNumber,
				Description: "A float between -1.0 (negative) and 1.0 (positive) representing the sentiment.",
			},
			"primary_topic": {
				Type:        genai.TypeString,
				Description: "The main subject of the message (e.g., 'Support', 'Gaming', 'Spam', 'Random', 'Coding').",
			},
			"is_toxic": {
				Type:        genai.TypeBoolean,
				Description: "True if the message contains hate speech, harassment, or excessive profanity.",
			},
		},
		Required: []string{"sentiment_score", "primary_topic", "is_toxic"},
	}

	model.GenerationConfig.Temperature = genai.Ptr[float32](0.3) // Lower for consistent classification
	model.GenerationConfig.TopP = genai.Ptr[float32](0.9)
	model.GenerationConfig.TopK = genai.Ptr[int32](40)
	model.GenerationConfig.MaxOutputTokens = genai.Ptr[int32](500)

	logger.Info("Gemini classifier initialized",
		zap.String("model", cfg.ModelName))

	return &GeminiClient{
		client:    client,
		model:     model,
		logger:    logger,
		modelName: cfg.ModelName,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string {
	return "gemini/" + c.modelName
}

// Classify sends one request for the given message text and parses the
// structured reply. One attempt only; the caller owns the fallback.
func (c *GeminiClient) Classify(ctx context.Context, text string) (models.AnalysisResult, error) {
	prompt := fmt.Sprintf("Analyze the following chat message for community health monitoring: %q", text)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("empty response from gemini")
	}

	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return models.AnalysisResult{}, fmt.Errorf("unexpected response type from gemini")
	}

	// Strip markdown code blocks if present
	cleanJSON := strings.TrimSpace(string(textPart))
	cleanJSON = strings.TrimPrefix(cleanJSON, "```json")
	cleanJSON = strings.TrimPrefix(cleanJSON, "```")
	cleanJSON = strings.TrimSuffix(cleanJSON, "```")
	cleanJSON = strings.TrimSpace(cleanJSON)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		c.logger.Error("Failed to parse JSON response",
			zap.Error(err),
			zap.String("original_response", string(textPart)),
			zap.String("cleaned_response", cleanJSON))
		return models.AnalysisResult{}, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	result = Normalize(result)

	c.logger.Debug("Message classified",
		zap.Float64("sentiment", result.SentimentScore),
		zap.String("topic", result.PrimaryTopic),
		zap.Bool("toxic", result.IsToxic))

	return result, nil
}
