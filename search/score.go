package search

import "github.com/fwojciec/docsearch"

// Score weights.
const (
	titleMatchScore = 10
	textMatchScore  = 5
	fuzzyMatchScore = 2

	// allTermsBonus multiplies the score of multi-term queries whose every
	// term appears exactly in the title or text.
	allTermsBonus = 1.5
)

// Score returns the relevance of entry for a normalized query. A score of
// zero means the entry does not match.
func Score(query string, entry *Entry) float64 {
	return scoreTerms(docsearch.Terms(query), entry)
}

func scoreTerms(terms []string, entry *Entry) float64 {
	if len(terms) == 0 {
		return 0
	}

	var score float64
	allPresent := true
	for _, term := range terms {
		inTitle := Contains(term, entry.NormalizedTitle)
		inText := Contains(term, entry.NormalizedText)

		if inTitle {
			score += titleMatchScore
		}
		if inText {
			score += textMatchScore
		}
		for _, word := range entry.words {
			if IsFuzzyMatch(term, word) {
				score += fuzzyMatchScore
			}
		}

		if !inTitle && !inText {
			allPresent = false
		}
	}

	if len(terms) > 1 && allPresent {
		score *= allTermsBonus
	}
	return score
}
