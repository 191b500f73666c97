package heatmap

import (
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"SectorPulse/internal/classify"
	"SectorPulse/internal/domain"
)

const noDataMessage = "No sector data available"

// Builder turns raw article batches into ranked heatmap results. Builders are
// stateless apart from their logger and safe for concurrent use.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder constructs a heatmap builder.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logger}
}

type sectorGroup struct {
	sector      string
	articles    []domain.Article
	confidences []float64
}

// Build classifies every article, groups survivors by winning sector,
// aggregates each group, and ranks sectors by volume. sectorFilter, when
// non-empty, drops articles whose winning sector is not listed; filtering
// happens after classification so retained sectors' scores are unaffected.
// An empty batch yields an empty sector list with a no-data summary, not an
// error.
func (b *Builder) Build(articles []domain.Article, sectorFilter []string) domain.HeatmapResult {
	b.debug("building heatmap", "articles", len(articles), "filter", len(sectorFilter))

	allowed := map[string]bool{}
	for _, sector := range sectorFilter {
		allowed[sector] = true
	}

	// Group by sector, preserving first-encounter order so equal volume
	// scores rank deterministically later.
	var order []string
	groups := map[string]*sectorGroup{}
	for _, article := range articles {
		result := classify.Classify(article)
		if len(allowed) > 0 && !allowed[result.Sector] {
			continue
		}
		group, ok := groups[result.Sector]
		if !ok {
			group = &sectorGroup{sector: result.Sector}
			groups[result.Sector] = group
			order = append(order, result.Sector)
		}
		group.articles = append(group.articles, article)
		group.confidences = append(group.confidences, result.Confidence)
	}

	// Aggregation is pure, so sectors can be computed in parallel.
	data := make([]domain.SectorMetrics, len(order))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sector := range order {
		group := groups[sector]
		g.Go(func() error {
			data[i] = aggregate(group.sector, group.articles, group.confidences, len(articles))
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(data, func(i, j int) bool {
		return data[i].VolumeScore > data[j].VolumeScore
	})

	sectors := make([]string, len(data))
	for i, metrics := range data {
		sectors[i] = metrics.Sector
	}

	return domain.HeatmapResult{
		Sectors:       sectors,
		HeatmapData:   data,
		TotalArticles: len(articles),
		GeneratedAt:   time.Now().UTC(),
		Summary:       summarize(data),
	}
}

// summarize derives the cross-sector highlights from already-rounded metrics.
func summarize(data []domain.SectorMetrics) domain.Summary {
	if len(data) == 0 {
		return domain.Summary{Message: noDataMessage}
	}

	mostActive := data[0]
	var totalSentiment float64
	var mostPositive, mostNegative *domain.SectorMetrics
	for i := range data {
		metrics := &data[i]
		totalSentiment += metrics.SentimentScore
		if metrics.VolumeScore > mostActive.VolumeScore {
			mostActive = *metrics
		}
		if metrics.SentimentScore > 0.1 && (mostPositive == nil || metrics.SentimentScore > mostPositive.SentimentScore) {
			mostPositive = metrics
		}
		if metrics.SentimentScore < -0.1 && (mostNegative == nil || metrics.SentimentScore < mostNegative.SentimentScore) {
			mostNegative = metrics
		}
	}

	summary := domain.Summary{
		MostActiveSector: mostActive.Sector,
		TotalSectors:     len(data),
		AverageSentiment: totalSentiment / float64(len(data)),
	}
	if mostPositive != nil {
		summary.MostPositiveSector = &mostPositive.Sector
	}
	if mostNegative != nil {
		summary.MostNegativeSector = &mostNegative.Sector
	}
	return summary
}

func (b *Builder) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}
