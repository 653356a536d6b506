package search

import (
	"strings"
	"unicode/utf8"
)

// Fuzzy matching only applies edit distance to short tokens. Longer tokens
// must contain one another to match.
const (
	minFuzzyWordLen = 3
	maxFuzzyTermLen = 4
	maxFuzzyWordLen = 6
	maxFuzzyEdits   = 1
)

// Contains reports whether term occurs in haystack. Both are expected to be
// normalized.
func Contains(term, haystack string) bool {
	return strings.Contains(haystack, term)
}

// EditDistance returns the Levenshtein distance between a and b, counting
// insertions, deletions and substitutions of runes as one edit each.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// table[i][j] is the distance between rb[:i] and ra[:j].
	table := make([][]int, len(rb)+1)
	for i := range table {
		table[i] = make([]int, len(ra)+1)
		table[i][0] = i
	}
	for j := range table[0] {
		table[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(
				table[i-1][j-1], // substitution
				table[i][j-1],   // insertion
				table[i-1][j],   // deletion
			)
		}
	}

	return table[len(rb)][len(ra)]
}

// IsFuzzyMatch reports whether word approximately matches the query term.
//
// Words shorter than three runes never match. Otherwise the two match when
// either contains the other, or, for a term of at most four runes and a word
// of at most six, when they are within one edit of each other.
func IsFuzzyMatch(term, word string) bool {
	wordLen := utf8.RuneCountInString(word)
	if wordLen < minFuzzyWordLen {
		return false
	}
	if Contains(term, word) || Contains(word, term) {
		return true
	}
	if utf8.RuneCountInString(term) <= maxFuzzyTermLen && wordLen <= maxFuzzyWordLen {
		return EditDistance(term, word) <= maxFuzzyEdits
	}
	return false
}
