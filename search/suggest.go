package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

const (
	maxSuggestions = 3

	// Queries shorter than this also get the generic suggestions.
	shortQueryLen = 3
)

// corrections maps common misspellings of site vocabulary to their fix.
var corrections = map[string]string{
	"instal":         "install",
	"instalation":    "installation",
	"installaton":    "installation",
	"intallation":    "installation",
	"configuraton":   "configuration",
	"configration":   "configuration",
	"confguration":   "configuration",
	"comand":         "command",
	"commnad":        "command",
	"comands":        "commands",
	"agnet":          "agent",
	"agnets":         "agents",
	"depoly":         "deploy",
	"deplyo":         "deploy",
	"documention":    "documentation",
	"documetation":   "documentation",
	"seach":          "search",
	"serach":         "search",
	"tutoral":        "tutorial",
	"setings":        "settings",
	"enviroment":     "environment",
	"authentifation": "authentication",
	"authenication":  "authentication",
	"refrence":       "reference",
	"quikstart":      "quickstart",
}

// genericSuggestions are offered for very short queries.
var genericSuggestions = []string{
	"getting started",
	"installation",
	"configuration",
}

// Suggest returns up to three alternative queries for a query that matched
// nothing: spelling corrections of its words, then generic queries when the
// raw query is shorter than three runes.
func Suggest(raw string) []string {
	suggestions := make([]string, 0, maxSuggestions)
	add := func(s string) {
		if !slices.Contains(suggestions, s) {
			suggestions = append(suggestions, s)
		}
	}

	for _, word := range docsearch.Terms(docsearch.Normalize(raw)) {
		if fix, ok := corrections[word]; ok {
			add(fix)
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(raw)) < shortQueryLen {
		for _, s := range genericSuggestions {
			add(s)
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
