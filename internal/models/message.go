package models

import "time"

// MessageState tracks a message through the analysis lifecycle.
type MessageState string

const (
	// StatePending means the message is appended but its classification
	// has not resolved yet.
	StatePending MessageState = "pending"

	// StateAnalyzed means the classification call succeeded.
	StateAnalyzed MessageState = "analyzed"

	// StateFailedSafe means the classification call failed and the record
	// carries the neutral fallback result instead.
	StateFailedSafe MessageState = "failed-safe"
)

// AnalysisResult is the structured judgment returned by the classifier
// for a single message: sentiment in [-1.0, 1.0], a short free-form topic
// label, and a toxicity flag.
type AnalysisResult struct {
	SentimentScore float64 `json:"sentiment_score"`
	PrimaryTopic   string  `json:"primary_topic"`
	IsToxic        bool    `json:"is_toxic"`
}

// NeutralResult is the failed-safe fallback substituted when a
// classification cannot complete.
func NeutralResult() AnalysisResult {
	return AnalysisResult{
		SentimentScore: 0,
		PrimaryTopic:   "Unknown",
		IsToxic:        false,
	}
}

// Message represents one ingested chat message and its analysis lifecycle.
// Analysis is nil exactly while the message is pending.
type Message struct {
	ID        string          `json:"id"`
	Author    string          `json:"author"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	State     MessageState    `json:"state"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
}

// Resolved reports whether the message left the pending state.
func (m *Message) Resolved() bool {
	return m.State != StatePending
}

// SubmitRequest for single message submission.
type SubmitRequest struct {
	Author string `json:"author"`
	Text   string `json:"text" binding:"required"`
}
