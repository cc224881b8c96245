package classify

import (
	"strings"

	"github.com/navitrade/newsflow/internal/domain"
)

// Phase-1 sentiment lexicons. Matching is plain substring containment on
// lowercased text; each keyword counts at most once per article.
var (
	PositiveKeywords = []string{"profit", "growth", "surge", "rally", "beat", "upgrade"}
	NegativeKeywords = []string{"loss", "fall", "decline", "drop", "downgrade", "miss"}
)

// AnalyzeSentiment counts lexicon hits against lowercased text and returns
// the dominant sentiment with the winning side's hit count. Ties (including
// zero hits on both sides) are neutral with zero hits.
func AnalyzeSentiment(text string) (domain.Sentiment, int) {
	positive := 0
	for _, word := range PositiveKeywords {
		if strings.Contains(text, word) {
			positive++
		}
	}

	negative := 0
	for _, word := range NegativeKeywords {
		if strings.Contains(text, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return domain.SentimentBullish, positive
	case negative > positive:
		return domain.SentimentBearish, negative
	default:
		return domain.SentimentNeutral, 0
	}
}

// ExtractKeywords returns every lexicon keyword present in the text, in
// lexicon order
func ExtractKeywords(text string) []string {
	var detected []string
	for _, word := range append(append([]string{}, PositiveKeywords...), NegativeKeywords...) {
		if strings.Contains(text, word) {
			detected = append(detected, word)
		}
	}
	return detected
}

// DetectCompany scans the roster in order and returns the first company
// whose name or symbol appears in the text. First match wins: ambiguous
// text that mentions several companies resolves to whichever comes first
// in roster order, which the repository keeps stable (insertion order).
func DetectCompany(text string, roster []domain.Company) *domain.Company {
	for i := range roster {
		name := strings.ToLower(roster[i].Name)
		symbol := strings.ToLower(roster[i].Symbol)

		if name != "" && strings.Contains(text, name) {
			return &roster[i]
		}
		if symbol != "" && strings.Contains(text, symbol) {
			return &roster[i]
		}
	}
	return nil
}
