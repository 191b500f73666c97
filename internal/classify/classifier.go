package classify

import (
	"strings"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/taxonomy"
)

// Result pairs an article with its winning sector and a normalized confidence
// share. Confidence is the winner's score divided by the sum over all sectors,
// clamped to 1.0; it is exactly 0.0 iff the sector is taxonomy.Other.
type Result struct {
	ArticleID  string
	Sector     string
	Confidence float64
}

// Classify scores one article against the sector lexicon and returns the best
// sector. Pure function: identical input always yields an identical result.
//
// Scoring: +1 per case-insensitive keyword occurrence in title+description,
// plus a flat +2 when the keyword also appears in the title. A title match
// therefore counts both in the body scan and as the bonus; the double count
// keeps confidence values comparable across batches.
func Classify(article domain.Article) Result {
	text := strings.ToLower(article.Title + " " + article.Description)
	title := strings.ToLower(article.Title)

	var (
		bestSector string
		bestScore  float64
		totalScore float64
	)

	for _, sector := range taxonomy.Sectors() {
		var score float64
		for _, keyword := range taxonomy.Keywords(sector) {
			count := strings.Count(text, keyword)
			if count == 0 {
				continue
			}
			score += float64(count)
			if strings.Contains(title, keyword) {
				score += 2.0
			}
		}
		totalScore += score
		if score > bestScore {
			bestScore = score
			bestSector = sector
		}
	}

	if bestScore == 0 {
		return Result{ArticleID: article.ID, Sector: taxonomy.Other, Confidence: 0.0}
	}

	confidence := bestScore / totalScore
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Result{ArticleID: article.ID, Sector: bestSector, Confidence: confidence}
}
