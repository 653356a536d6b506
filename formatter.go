package docsearch

import (
	"fmt"
	"strings"
)

// FormatResponse formats a search response for terminal display.
// Results are numbered from offset+1 and separated by blank lines, followed
// by the facets. Suggestions are listed when nothing matched.
func FormatResponse(resp *SearchResponse, offset int) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	if resp.Total == 0 {
		b.WriteString("No results found.")
		if len(resp.Suggestions) > 0 {
			b.WriteString("\n\nDid you mean:")
			for _, s := range resp.Suggestions {
				b.WriteString("\n  ")
				b.WriteString(s)
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%d results", resp.Total)
	if len(resp.Results) < resp.Total {
		if len(resp.Results) == 0 {
			b.WriteString(" (none on this page)")
		} else {
			fmt.Fprintf(&b, " (showing %d-%d)", offset+1, offset+len(resp.Results))
		}
	}

	for i, r := range resp.Results {
		header := r.Title
		if header == "" {
			header = r.ID
		}
		fmt.Fprintf(&b, "\n\n%d. [%s] %s (%s)\n   id: %s  score: %.1f", offset+i+1, r.Kind, header, r.Category, r.ID, r.Score)
		if r.Excerpt != "" {
			b.WriteString("\n   ")
			b.WriteString(r.Excerpt)
		}
		if len(r.Highlights) > 0 {
			b.WriteString("\n   matches: ")
			b.WriteString(strings.Join(r.Highlights, ", "))
		}
	}

	b.WriteString("\n\nKinds: ")
	b.WriteString(formatFacet(resp.Facets.Kinds))
	b.WriteString("\nCategories: ")
	b.WriteString(formatFacet(resp.Facets.Categories))

	return b.String()
}

func formatFacet(counts []FacetCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.Count))
	}
	return strings.Join(parts, ", ")
}
