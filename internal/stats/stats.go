// Package stats derives dashboard aggregates from a message snapshot.
// Every function is pure: recomputed from scratch on each call, no state.
package stats

import (
	"sort"

	"sentinel-dashboard/internal/models"
)

// DefaultSeriesWindow is the trailing window size for the sentiment
// time-series display.
const DefaultSeriesWindow = 20

// TopicCount is one entry of the topic frequency ranking.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// SeriesPoint is one point of the recent sentiment series. Sentiment is
// nil for pending messages so consumers can render a gap instead of a
// fabricated zero.
type SeriesPoint struct {
	ID        string   `json:"id"`
	Sentiment *float64 `json:"sentiment"`
}

// AverageSentiment returns the arithmetic mean sentiment over resolved
// records, or 0 when none have resolved.
func AverageSentiment(messages []models.Message) float64 {
	var sum float64
	var n int
	for i := range messages {
		if messages[i].Analysis != nil {
			sum += messages[i].Analysis.SentimentScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ToxicCount returns the number of resolved records flagged toxic.
func ToxicCount(messages []models.Message) int {
	count := 0
	for i := range messages {
		if messages[i].Analysis != nil && messages[i].Analysis.IsToxic {
			count++
		}
	}
	return count
}

// TopicRanking groups resolved records by primary topic and returns the
// top 5 topics by count, descending, with first-appearance order breaking
// ties.
func TopicRanking(messages []models.Message) []TopicCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var topics []string

	for i := range messages {
		if messages[i].Analysis == nil {
			continue
		}
		topic := messages[i].Analysis.PrimaryTopic
		if _, seen := counts[topic]; !seen {
			firstSeen[topic] = len(topics)
			topics = append(topics, topic)
		}
		counts[topic]++
	}

	ranking := make([]TopicCount, 0, len(topics))
	for _, topic := range topics {
		ranking = append(ranking, TopicCount{Topic: topic, Count: counts[topic]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return firstSeen[ranking[i].Topic] < firstSeen[ranking[j].Topic]
	})

	if len(ranking) > 5 {
		ranking = ranking[:5]
	}
	return ranking
}

// RecentSentimentSeries returns the last window messages in original
// order as series points. Pending messages contribute a nil sentiment.
// A window <= 0 selects the default.
func RecentSentimentSeries(messages []models.Message, window int) []SeriesPoint {
	if window <= 0 {
		window = DefaultSeriesWindow
	}
	start := 0
	if len(messages) > window {
		start = len(messages) - window
	}

	series := make([]SeriesPoint, 0, len(messages)-start)
	for i := start; i < len(messages); i++ {
		point := SeriesPoint{ID: messages[i].ID}
		if messages[i].Analysis != nil {
			score := messages[i].Analysis.SentimentScore
			point.Sentiment = &score
		}
		series = append(series, point)
	}
	return series
}

// Overview bundles the dashboard aggregates computed from one snapshot.
type Overview struct {
	TotalMessages    int           `json:"total_messages"`
	ResolvedMessages int           `json:"resolved_messages"`
	AvgSentiment     float64       `json:"avg_sentiment"`
	ToxicCount       int           `json:"toxic_count"`
	TopicRanking     []TopicCount  `json:"topic_ranking"`
	SentimentSeries  []SeriesPoint `json:"sentiment_series"`
}

// Compute derives the full dashboard overview from a snapshot.
func Compute(messages []models.Message, window int) Overview {
	resolved := 0
	for i := range messages {
		if messages[i].Resolved() {
			resolved++
		}
	}
	return Overview{
		TotalMessages:    len(messages),
		ResolvedMessages: resolved,
		AvgSentiment:     AverageSentiment(messages),
		ToxicCount:       ToxicCount(messages),
		TopicRanking:     TopicRanking(messages),
		SentimentSeries:  RecentSentimentSeries(messages, window),
	}
}
