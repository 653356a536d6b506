package search

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

// Highlight limits.
const (
	minHighlightTermLen  = 3
	maxHighlightsPerTerm = 3
	maxHighlights        = 5
)

// Excerpt limits.
const (
	maxExcerptLen = 200
	ellipsis      = "..."
)

// Ensure highlighters implement docsearch.Highlighter.
var (
	_ docsearch.Highlighter = (*RegexHighlighter)(nil)
	_ docsearch.Highlighter = (*TokenHighlighter)(nil)
)

// RegexHighlighter highlights whole words containing a query term using a
// case-insensitive regular expression per term.
type RegexHighlighter struct{}

// NewRegexHighlighter creates a new RegexHighlighter.
func NewRegexHighlighter() *RegexHighlighter {
	return &RegexHighlighter{}
}

// Highlights returns up to three words per query term longer than two runes,
// deduplicated in first-seen order and capped at five.
func (h *RegexHighlighter) Highlights(query, text string) []string {
	var matches []string
	for _, term := range highlightTerms(query) {
		re, err := regexp.Compile(`(?i)[\p{L}\p{N}]*` + regexp.QuoteMeta(term) + `[\p{L}\p{N}]*`)
		if err != nil {
			continue
		}
		matches = append(matches, re.FindAllString(text, maxHighlightsPerTerm)...)
	}
	return capHighlights(matches)
}

// TokenHighlighter highlights whole words containing a query term by
// splitting text into letter and digit runs.
type TokenHighlighter struct{}

// NewTokenHighlighter creates a new TokenHighlighter.
func NewTokenHighlighter() *TokenHighlighter {
	return &TokenHighlighter{}
}

// Highlights applies the same limits as RegexHighlighter.
func (h *TokenHighlighter) Highlights(query, text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var matches []string
	for _, term := range highlightTerms(query) {
		var n int
		for _, w := range words {
			if n == maxHighlightsPerTerm {
				break
			}
			if strings.Contains(strings.ToLower(w), term) {
				matches = append(matches, w)
				n++
			}
		}
	}
	return capHighlights(matches)
}

func highlightTerms(query string) []string {
	var terms []string
	for _, t := range docsearch.Terms(strings.ToLower(query)) {
		if utf8.RuneCountInString(t) >= minHighlightTermLen {
			terms = append(terms, t)
		}
	}
	return terms
}

func capHighlights(matches []string) []string {
	out := make([]string, 0, min(len(matches), maxHighlights))
	for _, m := range matches {
		if len(out) == maxHighlights {
			break
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// Excerpt returns the sentence of text that contains the most distinct
// query terms, truncated to 200 runes and followed by an ellipsis. Ties go
// to the earliest sentence; when no sentence matches the first is used.
func Excerpt(text, query string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	terms := slices.Compact(slices.Sorted(slices.Values(docsearch.Terms(strings.ToLower(query)))))

	best, bestCount := sentences[0], 0
	for _, s := range sentences {
		lower := strings.ToLower(s)
		var count int
		for _, term := range terms {
			if strings.Contains(lower, term) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = s, count
		}
	}

	return truncate(best, maxExcerptLen) + ellipsis
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.Join(strings.Fields(p), " "); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
