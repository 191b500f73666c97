package marketaux

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/ports"
)

const (
	defaultBaseURL  = "https://api.marketaux.com/v1"
	defaultLanguage = "en"
	defaultExchange = "NYSE,NASDAQ"
	maxPageSize     = 100
	defaultPageSize = 50
)

// Config carries credentials and query defaults for the MarketAux news API.
type Config struct {
	APIKey    string
	BaseURL   string
	Language  string
	Exchanges string
}

// Client fetches financial news batches from MarketAux.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ ports.NewsProvider = (*Client)(nil)

// NewClient validates credentials and wires an HTTP client; pass nil to use a
// default client with a 20-second timeout.
func NewClient(cfg Config, client *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: marketaux api key is missing", domain.ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Exchanges == "" {
		cfg.Exchanges = defaultExchange
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{cfg: cfg, client: client}, nil
}

// Name identifies the provider inside the registry.
func (c *Client) Name() string {
	return "marketaux"
}

// Fetch requests up to limit articles from /news/all. MarketAux caps a single
// page at 100 entries. The call is bounded by ctx; exactly one request is
// made per invocation.
func (c *Client) Fetch(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/news/all"
	params := url.Values{}
	params.Set("api_token", c.cfg.APIKey)
	params.Set("language", c.cfg.Language)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("exchanges", c.cfg.Exchanges)
	params.Set("filter_entities", "true")
	params.Set("sentiment", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "SectorPulse/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("marketaux returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var envelope struct {
		Data []rawArticle `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("malformed marketaux response: missing data array")
	}

	articles := make([]domain.Article, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		articles = append(articles, parseArticle(raw))
	}
	return articles, nil
}

type rawArticle struct {
	UUID           string      `json:"uuid"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	URL            string      `json:"url"`
	PublishedAt    string      `json:"published_at"`
	Source         string      `json:"source"`
	Sentiment      string      `json:"sentiment"`
	RelevanceScore *float64    `json:"relevance_score"`
	Entities       []rawEntity `json:"entities"`
}

type rawEntity struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// parseArticle maps one raw record onto the domain model. Missing text fields
// stay empty strings; malformed records never fail the batch.
func parseArticle(raw rawArticle) domain.Article {
	title := stripMarkup(raw.Title)
	description := stripMarkup(raw.Description)
	source := strings.TrimSpace(raw.Source)

	id := strings.TrimSpace(raw.UUID)
	if id == "" {
		id = contentID(title, source)
	}

	article := domain.Article{
		ID:             id,
		Title:          title,
		Description:    description,
		URL:            raw.URL,
		Source:         source,
		RelevanceScore: raw.RelevanceScore,
	}

	if sentiment, ok := domain.ParseSentiment(raw.Sentiment); ok {
		article.Sentiment = sentiment
	}

	if publishedAt, err := time.Parse(time.RFC3339, raw.PublishedAt); err == nil {
		article.PublishedAt = publishedAt.UTC()
	}

	for _, entity := range raw.Entities {
		article.Entities = append(article.Entities, domain.Entity{
			Name:       entity.Name,
			Type:       entity.Type,
			Confidence: entity.Confidence,
		})
	}

	return article
}

// stripMarkup flattens embedded HTML in provider snippets to plain text so
// keyword scoring sees words, not tags or entities.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// contentID derives a stable identifier for records the provider ships without
// a uuid. A content hash stays identical across runs, unlike runtime string
// hashing.
func contentID(title, source string) string {
	sum := sha256.Sum256([]byte(title + "\n" + source))
	return hex.EncodeToString(sum[:])
}
