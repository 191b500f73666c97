package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/heatmap"
	"SectorPulse/internal/usecase"
)

type fakeCache struct {
	articles []domain.Article
	err      error
	usage    domain.QuotaUsage
}

func (f *fakeCache) GetData(ctx context.Context, limit int, forceRefresh bool) ([]domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.articles) {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func (f *fakeCache) UsageInfo() domain.QuotaUsage { return f.usage }

func newTestServer(t *testing.T, cache *fakeCache) *httptest.Server {
	t.Helper()

	uc := usecase.NewHeatmap(usecase.HeatmapDeps{
		Cache:   cache,
		Builder: heatmap.NewBuilder(nil),
	})

	server := httptest.NewServer(New(uc, nil).Handler())
	t.Cleanup(server.Close)
	return server
}

func TestRootEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{})
	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get root: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message == "" {
		t.Fatal("expected a running message")
	}

	// The root pattern must not swallow unknown paths.
	other, err := http.Get(server.URL + "/nope")
	if err != nil {
		t.Fatalf("get unknown path: %v", err)
	}
	defer other.Body.Close()
	if other.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", other.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{})
	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestHeatmapEndpoint(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{
		articles: []domain.Article{
			{ID: "t1", Title: "Cloud software platform", Sentiment: domain.SentimentPositive},
			{ID: "f1", Title: "Bank loan growth"},
		},
		usage: domain.QuotaUsage{Used: 1, Limit: 100, Remaining: 99},
	}
	server := newTestServer(t, cache)

	resp, err := http.Get(server.URL + "/api/news/heatmap?limit=10")
	if err != nil {
		t.Fatalf("get heatmap: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Success         bool                 `json:"success"`
		Heatmap         domain.HeatmapResult `json:"heatmap_data"`
		TotalArticles   int                  `json:"total_articles"`
		SectorsAnalyzed []string             `json:"sectors_analyzed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success {
		t.Fatal("expected success=true")
	}
	if payload.TotalArticles != 2 {
		t.Fatalf("expected 2 articles, got %d", payload.TotalArticles)
	}
	if len(payload.SectorsAnalyzed) != 2 {
		t.Fatalf("expected 2 sectors, got %v", payload.SectorsAnalyzed)
	}
}

func TestHeatmapSectorFilterParam(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{
		articles: []domain.Article{
			{ID: "t1", Title: "Cloud software platform"},
			{ID: "f1", Title: "Bank loan growth"},
		},
	}
	server := newTestServer(t, cache)

	resp, err := http.Get(server.URL + "/api/news/heatmap?sectors=Finance")
	if err != nil {
		t.Fatalf("get heatmap: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		SectorsAnalyzed []string `json:"sectors_analyzed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.SectorsAnalyzed) != 1 || payload.SectorsAnalyzed[0] != "Finance" {
		t.Fatalf("expected [Finance], got %v", payload.SectorsAnalyzed)
	}
}

func TestHeatmapQuotaErrorMapsTo429(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{err: domain.ErrQuotaExceeded})

	resp, err := http.Get(server.URL + "/api/news/heatmap")
	if err != nil {
		t.Fatalf("get heatmap: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}

func TestHeatmapUpstreamErrorMapsTo503(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{err: domain.ErrUpstreamUnavailable})

	resp, err := http.Get(server.URL + "/api/news/articles")
	if err != nil {
		t.Fatalf("get articles: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestSectorsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{})

	resp, err := http.Get(server.URL + "/api/news/sectors")
	if err != nil {
		t.Fatalf("get sectors: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Sectors []string `json:"sectors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Sectors) != 8 || payload.Sectors[0] != "Technology" {
		t.Fatalf("unexpected sectors: %v", payload.Sectors)
	}
}

func TestUsageEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeCache{usage: domain.QuotaUsage{Used: 7, Limit: 100, Remaining: 93}})

	resp, err := http.Get(server.URL + "/api/news/usage")
	if err != nil {
		t.Fatalf("get usage: %v", err)
	}
	defer resp.Body.Close()

	var usage domain.QuotaUsage
	if err := json.NewDecoder(resp.Body).Decode(&usage); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if usage.Used != 7 || usage.Remaining != 93 {
		t.Fatalf("unexpected usage: %+v", usage)
	}
}
