package textanalysis

import (
	"sort"
	"strings"
	"unicode/utf8"

	"surveypulse/internal/shared"
	"surveypulse/pkg/contracts/domain"
)

const minKeywordLength = 3

// ExtractKeywords returns the maxKeywords most frequent tokens across texts.
// Tokens that are not purely alphanumeric, shorter than three characters or
// stopwords are dropped. Ties keep the order in which tokens were first seen.
func (a *Analyzer) ExtractKeywords(texts []string, maxKeywords int) []domain.Keyword {
	keywords := make([]domain.Keyword, 0)
	if len(texts) == 0 || maxKeywords <= 0 {
		return keywords
	}

	joined := strings.ToLower(strings.Join(texts, " "))

	counts := make(map[string]int)
	order := make([]string, 0)
	total := 0
	for _, tok := range a.engine.Tokenize(joined) {
		if !isAlphanumeric(tok) || utf8.RuneCountInString(tok) < minKeywordLength || a.engine.IsStopword(tok) {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
		total++
	}

	if total == 0 {
		return keywords
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	for _, word := range order {
		keywords = append(keywords, domain.Keyword{
			Word:      word,
			Count:     counts[word],
			Relevance: shared.Percent(float64(counts[word]), float64(total), 2),
		})
	}
	return keywords
}
