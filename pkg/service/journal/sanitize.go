package journal

import (
	"regexp"
	"strings"

	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

var (
	inlineLabel     = regexp.MustCompile(`(?i)(key\s*take\s*aways:|key\s*takeaways:|atmosphere:|action\s*items:)\s*`)
	standaloneLabel = regexp.MustCompile(`(?i)^(key\s*take\s*aways|key\s*takeaways|atmosphere|action\s*items):?\s*$`)
)

// Sanitize post-processes an assembled document: stray inline section
// labels are removed, recognized headings are rewritten to canonical
// spelling, duplicate sections are dropped wholesale, and headings with
// no content are suppressed. The single top-level heading is always
// retained. Sanitize is idempotent.
func Sanitize(doc string) string {
	lines := strings.Split(doc, "\n")
	var cleaned []string
	seen := map[string]bool{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			trimmed := strings.TrimSpace(line)
			if standaloneLabel.MatchString(trimmed) {
				continue
			}
			cleaned = append(cleaned, inlineLabel.ReplaceAllString(line, ""))
			continue
		}

		level, text := m[1], m[2]
		key := level + " " + collapseHeading(text)
		if sec, ok := types.MatchSection(trimLabel(text)); ok {
			text = sec.String()
			line = level + " " + text
			key = level + " " + collapseHeading(text)
		}

		if seen[key] {
			// Duplicate section: drop the heading and everything under it
			for i+1 < len(lines) && !headingLine.MatchString(lines[i+1]) {
				i++
			}
			continue
		}

		if level == "#" || hasContentBefore(lines[i+1:]) {
			cleaned = append(cleaned, line)
			seen[key] = true
		}
	}

	return strings.Join(cleaned, "\n")
}

// hasContentBefore reports whether a non-empty, non-boilerplate line
// exists before the next heading.
func hasContentBefore(lines []string) bool {
	for _, line := range lines {
		if headingLine.MatchString(line) {
			return false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || standaloneLabel.MatchString(trimmed) {
			continue
		}
		return true
	}
	return false
}

func collapseHeading(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
