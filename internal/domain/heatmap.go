package domain

import "time"

// SectorMetrics summarizes one sector's slice of an article batch. Numeric
// fields are rounded to three decimals at construction; intermediate math
// happens on unrounded values.
type SectorMetrics struct {
	Sector         string   `json:"sector"`
	Count          int      `json:"count"`
	SentimentScore float64  `json:"sentiment_score"`
	VolumeScore    float64  `json:"volume_score"`
	RelevanceScore float64  `json:"relevance_score"`
	Confidence     float64  `json:"confidence"`
	ColorIntensity float64  `json:"color_intensity"`
	Keywords       []string `json:"keywords"`
	ArticleIDs     []string `json:"articles"`
}

// Summary describes the cross-sector highlights of a heatmap. Message is set
// only when no sector data exists; the positive/negative sectors are nil when
// no sector clears the corresponding threshold.
type Summary struct {
	Message            string  `json:"message,omitempty"`
	MostActiveSector   string  `json:"most_active_sector,omitempty"`
	MostPositiveSector *string `json:"most_positive_sector,omitempty"`
	MostNegativeSector *string `json:"most_negative_sector,omitempty"`
	TotalSectors       int     `json:"total_sectors,omitempty"`
	AverageSentiment   float64 `json:"average_sentiment,omitempty"`
}

// HeatmapResult is the ranked outcome of classifying and aggregating one
// article batch. HeatmapData is ordered descending by volume score.
type HeatmapResult struct {
	Sectors       []string        `json:"sectors"`
	HeatmapData   []SectorMetrics `json:"heatmap_data"`
	TotalArticles int             `json:"total_articles"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Summary       Summary         `json:"summary"`
}

// QuotaUsage is a read-only snapshot of the cache's daily budget and
// freshness state.
type QuotaUsage struct {
	Used       int        `json:"daily_queries_used"`
	Limit      int        `json:"daily_queries_limit"`
	Remaining  int        `json:"queries_remaining"`
	LastUpdate *time.Time `json:"last_cache_update"`
	Fresh      bool       `json:"cache_valid"`
}
