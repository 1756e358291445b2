package journal

import (
	"regexp"
	"strings"
)

// Boilerplate the upstream prepends to free-text summaries. Exact
// substring forms are tried first, then line-anchored patterns.
var (
	exactBoilerplate = []string{
		"## Summary\n",
		"##Summary\n",
		"Summary:\n",
		"**Summary:**",
		"Summary:",
	}

	summaryHeadingLine = regexp.MustCompile(`(?m)^#{1,3}\s*Summary\s*\n`)
	authorPreambleLine = regexp.MustCompile(`(?m)^#{1,3}\s*\S+'s Memory Summary\s*\n`)
)

// Normalize strips known redundant summary headers and labels from raw
// upstream text. Content it does not recognize as boilerplate is left
// untouched. Always returns a string, empty on empty input.
func Normalize(text string) string {
	text = authorPreambleLine.ReplaceAllString(text, "")
	text = summaryHeadingLine.ReplaceAllString(text, "")
	for _, old := range exactBoilerplate {
		text = strings.ReplaceAll(text, old, "")
	}
	return strings.TrimSpace(text)
}
