package journal

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

var (
	headingLine = regexp.MustCompile(`^(#{1,3})\s*([^#\s].*?)\s*$`)
	labelLine   = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*:\s*$`)
	bulletLine  = regexp.MustCompile(`^\s*(?:[-*•]|\d+\.)\s+(.+)$`)
)

// Extract locates the named section inside a raw summary blob. Three
// rules are tried in order, first match wins:
//
//  1. a markdown heading (level 1 to 3) whose text matches the section
//     name or one of its spelling variants, capturing up to the next
//     heading or end of text
//  2. an inline label line ("Atmosphere:" or a bare "Atmosphere"),
//     capturing up to the next label line or a blank line followed by a
//     capitalized word
//  3. for Key Takeaways and Action Items only, the first contiguous run
//     of bullet lines anywhere in the text
//
// Returns an empty string when nothing matches. Callers must treat
// empty as "omit this section", never as an error.
func Extract(text string, sec types.Section) string {
	if body, ok := extractByHeading(text, sec); ok {
		return body
	}
	if body, ok := extractByLabel(text, sec); ok {
		return body
	}
	if sec == types.SectionKeyTakeaways || sec == types.SectionActionItems {
		if body, ok := extractBulletRun(text); ok {
			return body
		}
	}
	return ""
}

// HasSection reports whether the text contains the section in heading
// or inline-label form. The bullet-run fallback does not count: it
// matches almost any list and says nothing about labeling.
func HasSection(text string, sec types.Section) bool {
	if _, ok := extractByHeading(text, sec); ok {
		return true
	}
	_, ok := extractByLabel(text, sec)
	return ok
}

func extractByHeading(text string, sec types.Section) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := headingLine.FindStringSubmatch(line)
		if m == nil || !sec.MatchHeading(trimLabel(m[2])) {
			continue
		}
		var body []string
		for _, next := range lines[i+1:] {
			if headingLine.MatchString(next) {
				break
			}
			body = append(body, next)
		}
		return strings.TrimSpace(strings.Join(body, "\n")), true
	}
	return "", false
}

func extractByLabel(text string, sec types.Section) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !sec.MatchHeading(trimLabel(strings.TrimSpace(line))) {
			continue
		}
		var body []string
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if labelLine.MatchString(strings.TrimSpace(next)) {
				break
			}
			if strings.TrimSpace(next) == "" && startsCapitalized(lines, j+1) {
				break
			}
			body = append(body, next)
		}
		return strings.TrimSpace(strings.Join(body, "\n")), true
	}
	return "", false
}

func extractBulletRun(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		if !bulletLine.MatchString(lines[i]) {
			continue
		}
		var items []string
		for ; i < len(lines); i++ {
			m := bulletLine.FindStringSubmatch(lines[i])
			if m == nil {
				break
			}
			items = append(items, "- "+strings.TrimSpace(m[1]))
		}
		return strings.Join(items, "\n"), true
	}
	return "", false
}

// trimLabel drops a trailing colon so "Key Takeaways:" matches the
// section name.
func trimLabel(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, ":"))
}

func startsCapitalized(lines []string, idx int) bool {
	if idx >= len(lines) {
		return false
	}
	trimmed := strings.TrimSpace(lines[idx])
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	return unicode.IsUpper(r)
}
