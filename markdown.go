package docsearch

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("^\\s*(```|~~~)")
	headingRe    = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.*?)\s*#*\s*$`)
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
	quoteRe      = regexp.MustCompile(`^\s*>\s?`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	emphasisRe   = regexp.MustCompile("\\*\\*|__|~~|`")
)

// MarkdownText converts markdown into plain prose for indexing and excerpts.
//
// Heading markers, list and quote markers, emphasis, link targets, images
// and inline HTML are removed. Code fence lines are dropped but the code
// inside them is kept. Headings that do not end in sentence punctuation get
// a trailing period so they are not merged with the following sentence.
func MarkdownText(markdown string) string {
	if markdown == "" {
		return ""
	}

	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if codeFenceRe.MatchString(line) {
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			line = m[1]
			if line != "" && !strings.ContainsAny(line[len(line)-1:], ".!?:") {
				line += "."
			}
		}
		line = listMarkerRe.ReplaceAllString(line, "")
		line = quoteRe.ReplaceAllString(line, "")
		line = imageRe.ReplaceAllString(line, "$1")
		line = linkRe.ReplaceAllString(line, "$1")
		line = htmlTagRe.ReplaceAllString(line, "")
		line = emphasisRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}
