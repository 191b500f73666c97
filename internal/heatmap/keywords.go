package heatmap

import (
	"regexp"
	"sort"
	"strings"

	"SectorPulse/internal/domain"
)

const keywordLimit = 10

var tokenExpr = regexp.MustCompile(`\b[a-z]{3,}\b`)

// stopWords filters function words out of keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// extractKeywords returns the most frequent lower-case tokens of length >= 3
// across the articles' titles and descriptions, stop words removed, up to ten
// entries. Equal counts keep first-encountered order.
func extractKeywords(articles []domain.Article) []string {
	var parts []string
	for _, article := range articles {
		parts = append(parts, article.Title, article.Description)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, token := range tokenExpr.FindAllString(text, -1) {
		if _, skip := stopWords[token]; skip {
			continue
		}
		if _, ok := counts[token]; !ok {
			firstSeen[token] = i
		}
		counts[token]++
	}

	ranked := make([]string, 0, len(counts))
	for token := range counts {
		ranked = append(ranked, token)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > keywordLimit {
		ranked = ranked[:keywordLimit]
	}
	return ranked
}
