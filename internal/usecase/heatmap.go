package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/heatmap"
	"SectorPulse/internal/ports"
	"SectorPulse/internal/taxonomy"
)

// HeatmapDeps wires the cache and builder into the serving use case.
type HeatmapDeps struct {
	Cache   ports.ArticleCache
	Builder *heatmap.Builder
	Logger  *slog.Logger
}

// Heatmap orchestrates article retrieval and sector aggregation for the
// serving layer.
type Heatmap struct {
	cache   ports.ArticleCache
	builder *heatmap.Builder
	logger  *slog.Logger
}

// NewHeatmap constructs the orchestration component.
func NewHeatmap(deps HeatmapDeps) *Heatmap {
	return &Heatmap{
		cache:   deps.Cache,
		builder: deps.Builder,
		logger:  deps.Logger,
	}
}

// Generate retrieves the article batch through the cache and builds the
// ranked sector heatmap. sectors, when non-empty, restricts the result to the
// named sectors after classification.
func (h *Heatmap) Generate(ctx context.Context, limit int, sectors []string, forceRefresh bool) (domain.HeatmapResult, error) {
	articles, err := h.cache.GetData(ctx, limit, forceRefresh)
	if err != nil {
		return domain.HeatmapResult{}, fmt.Errorf("get news data: %w", err)
	}

	h.info("generating heatmap", "articles", len(articles), "sectors", sectors)
	return h.builder.Build(articles, sectors), nil
}

// Articles returns up to limit articles for raw listing endpoints.
func (h *Heatmap) Articles(ctx context.Context, limit int, forceRefresh bool) ([]domain.Article, error) {
	articles, err := h.cache.GetData(ctx, limit, forceRefresh)
	if err != nil {
		return nil, fmt.Errorf("get news data: %w", err)
	}
	return articles, nil
}

// Sectors lists the classification targets in enumeration order.
func (h *Heatmap) Sectors() []string {
	return taxonomy.Sectors()
}

// Usage exposes the cache's quota snapshot.
func (h *Heatmap) Usage() domain.QuotaUsage {
	return h.cache.UsageInfo()
}

func (h *Heatmap) info(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}
