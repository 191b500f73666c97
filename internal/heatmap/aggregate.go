package heatmap

import (
	"math"

	"SectorPulse/internal/domain"
)

// aggregate computes the metrics for one sector's article group. totalArticles
// is the pre-filter batch size used for volume normalization; confidences are
// the per-article classification confidences for this sector, index-aligned
// with articles.
func aggregate(sector string, articles []domain.Article, confidences []float64, totalArticles int) domain.SectorMetrics {
	sentiment := sentimentScore(articles)
	volume := volumeScore(len(articles), totalArticles)
	relevance := relevanceScore(articles)

	ids := make([]string, len(articles))
	for i, article := range articles {
		ids[i] = article.ID
	}

	// Intensity is derived from the unrounded inputs so rounding error does
	// not compound; all exposed values are rounded in one place here.
	return domain.SectorMetrics{
		Sector:         sector,
		Count:          len(articles),
		SentimentScore: round3(sentiment),
		VolumeScore:    round3(volume),
		RelevanceScore: round3(relevance),
		Confidence:     round3(mean(confidences)),
		ColorIntensity: round3(colorIntensity(sentiment, volume, relevance)),
		Keywords:       extractKeywords(articles),
		ArticleIDs:     ids,
	}
}

// sentimentScore averages labeled articles' sentiment weights; unlabeled
// articles are excluded from numerator and denominator alike.
func sentimentScore(articles []domain.Article) float64 {
	var total float64
	var labeled int
	for _, article := range articles {
		if article.Sentiment == "" {
			continue
		}
		total += article.Sentiment.Weight()
		labeled++
	}
	if labeled == 0 {
		return 0.0
	}
	return total / float64(labeled)
}

// volumeScore is the sector's share of the batch, capped at 1.0.
func volumeScore(count, totalArticles int) float64 {
	if totalArticles == 0 {
		return 0.0
	}
	return math.Min(float64(count)/float64(totalArticles), 1.0)
}

// relevanceScore averages the relevance of articles that carry one.
func relevanceScore(articles []domain.Article) float64 {
	var total float64
	var scored int
	for _, article := range articles {
		if article.RelevanceScore == nil {
			continue
		}
		total += *article.RelevanceScore
		scored++
	}
	if scored == 0 {
		return 0.0
	}
	return total / float64(scored)
}

// colorIntensity weights volume at 40% and relevance and sentiment magnitude
// at 30% each. Sign is dropped on purpose: a strongly negative sector should
// render as hot as a strongly positive one.
func colorIntensity(sentiment, volume, relevance float64) float64 {
	intensity := volume*0.4 + relevance*0.3 + math.Abs(sentiment)*0.3
	return math.Min(intensity, 1.0)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
