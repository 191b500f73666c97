package domain

import (
	"strings"
	"time"
)

// Sentiment is the closed set of labels an upstream provider may attach to an
// article. The zero value means the provider supplied no label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps a free-form provider label onto the closed set.
// Unknown or empty labels report ok=false and leave the article unlabeled.
func ParseSentiment(label string) (Sentiment, bool) {
	switch s := Sentiment(strings.ToLower(strings.TrimSpace(label))); s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return s, true
	default:
		return "", false
	}
}

// Weight converts a sentiment label to its scoring contribution.
func (s Sentiment) Weight() float64 {
	switch s {
	case SentimentPositive:
		return 1.0
	case SentimentNegative:
		return -1.0
	default:
		return 0.0
	}
}

// Entity is a named entity attached to an article by the provider.
type Entity struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Article is a single news item produced by the ingestion layer. Consumers
// treat it as read-only; classification never mutates it.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
	Entities       []Entity  `json:"entities,omitempty"`
}
