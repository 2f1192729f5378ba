package classifier

import (
	"testing"

	"sentinel-dashboard/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   models.AnalysisResult
		want models.AnalysisResult
	}{
		{
			"in bounds untouched",
			models.AnalysisResult{SentimentScore: 0.5, PrimaryTopic: "Gaming", IsToxic: true},
			models.AnalysisResult{SentimentScore: 0.5, PrimaryTopic: "Gaming", IsToxic: true},
		},
		{
			"clamped high",
			models.AnalysisResult{SentimentScore: 3.2, PrimaryTopic: "General"},
			models.AnalysisResult{SentimentScore: 1.0, PrimaryTopic: "General"},
		},
		{
			"clamped low",
			models.AnalysisResult{SentimentScore: -7, PrimaryTopic: "General"},
			models.AnalysisResult{SentimentScore: -1.0, PrimaryTopic: "General"},
		},
		{
			"empty topic replaced",
			models.AnalysisResult{SentimentScore: 0.1, PrimaryTopic: ""},
			models.AnalysisResult{SentimentScore: 0.1, PrimaryTopic: "Unknown"},
		},
		{
			"boundary values kept",
			models.AnalysisResult{SentimentScore: -1.0, PrimaryTopic: "Spam"},
			models.AnalysisResult{SentimentScore: -1.0, PrimaryTopic: "Spam"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
