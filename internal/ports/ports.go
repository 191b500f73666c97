package ports

import (
	"context"

	"SectorPulse/internal/domain"
)

// NewsProvider pulls one batch of parsed articles from an upstream news API.
// Implementations perform exactly one upstream call per Fetch and honor ctx
// for timeout and cancellation.
type NewsProvider interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]domain.Article, error)
}

// ArticleCache mediates access to the upstream batch behind freshness and
// daily-quota policy.
type ArticleCache interface {
	GetData(ctx context.Context, limit int, forceRefresh bool) ([]domain.Article, error)
	UsageInfo() domain.QuotaUsage
}
