package marketaux

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SectorPulse/internal/domain"
)

const sampleResponse = `{
  "data": [
    {
      "uuid": "abc-123",
      "title": "Chipmaker <b>beats</b> estimates",
      "description": "<p>Strong semiconductor demand &amp; cloud growth.</p>",
      "url": "https://example.com/a",
      "published_at": "2026-03-10T09:30:00.000000Z",
      "source": "example.com",
      "sentiment": "positive",
      "relevance_score": 0.91,
      "entities": [{"name": "ACME", "type": "equity", "confidence": 0.98}]
    },
    {
      "title": "Untagged wire item",
      "description": "",
      "url": "https://example.com/b",
      "published_at": "not-a-date",
      "source": "wire",
      "sentiment": "bullish"
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{}, nil)
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestFetchParsesArticles(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"api_token": r.URL.Query().Get("api_token"),
			"limit":     r.URL.Query().Get("limit"),
			"sentiment": r.URL.Query().Get("sentiment"),
		}
		_, _ = w.Write([]byte(sampleResponse))
	})

	articles, err := client.Fetch(context.Background(), 25)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	if gotQuery["api_token"] != "test-key" || gotQuery["limit"] != "25" || gotQuery["sentiment"] != "true" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}

	first := articles[0]
	if first.ID != "abc-123" {
		t.Fatalf("unexpected id: %s", first.ID)
	}
	if first.Title != "Chipmaker beats estimates" {
		t.Fatalf("markup must be stripped from title: %q", first.Title)
	}
	if first.Description != "Strong semiconductor demand & cloud growth." {
		t.Fatalf("markup must be stripped from description: %q", first.Description)
	}
	if first.Sentiment != domain.SentimentPositive {
		t.Fatalf("unexpected sentiment: %q", first.Sentiment)
	}
	if first.RelevanceScore == nil || *first.RelevanceScore != 0.91 {
		t.Fatalf("unexpected relevance: %v", first.RelevanceScore)
	}
	want := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published time: %v", first.PublishedAt)
	}
	if len(first.Entities) != 1 || first.Entities[0].Name != "ACME" {
		t.Fatalf("unexpected entities: %v", first.Entities)
	}
}

func TestFetchDerivesStableContentID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	})

	articles, err := client.Fetch(context.Background(), 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	second := articles[1]
	sum := sha256.Sum256([]byte("Untagged wire item\nwire"))
	if second.ID != hex.EncodeToString(sum[:]) {
		t.Fatalf("expected content-derived id, got %s", second.ID)
	}
	// Unknown sentiment labels leave the article unlabeled.
	if second.Sentiment != "" {
		t.Fatalf("invalid sentiment must be dropped, got %q", second.Sentiment)
	}
	if !second.PublishedAt.IsZero() {
		t.Fatalf("unparseable date must stay zero, got %v", second.PublishedAt)
	}
}

func TestFetchClampsLimit(t *testing.T) {
	t.Parallel()

	var gotLimit string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	if _, err := client.Fetch(context.Background(), 500); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotLimit != "100" {
		t.Fatalf("expected limit clamped to 100, got %s", gotLimit)
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.Fetch(context.Background(), 10); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestFetchRejectsMalformedResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	})

	if _, err := client.Fetch(context.Background(), 10); err == nil {
		t.Fatal("expected error when data array is missing")
	}
}
