package journal

import (
	"strings"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
)

// FactsMarker is the heading that marks an already inserted facts
// section. Its presence makes insertion a no-op.
const FactsMarker = "### Facts"

// InsertFacts inserts a facts section into an assembled document. The
// section goes right after the Action Items section when present, else
// before the Conversations section, else at the end. Returns the
// document unchanged and false when there are no facts or the document
// already carries a facts marker.
func InsertFacts(doc string, facts []*model.Fact) (string, bool) {
	if len(facts) == 0 || strings.Contains(doc, FactsMarker) {
		return doc, false
	}

	var sb strings.Builder
	sb.WriteString("\n" + FactsMarker + "\n")
	for _, fact := range facts {
		sb.WriteString("* " + fact.Text + "\n")
	}
	section := sb.String()

	lines := strings.Split(doc, "\n")

	if at := actionItemsEnd(lines); at >= 0 {
		return strings.Join(lines[:at], "\n") + section + strings.Join(lines[at:], "\n"), true
	}
	if at := findLine(lines, "## Conversations"); at >= 0 {
		return strings.Join(lines[:at], "\n") + section + strings.Join(lines[at:], "\n"), true
	}
	return doc + "\n" + section, true
}

// actionItemsEnd returns the line index just past the Action Items
// section body, or -1 when the document has no Action Items heading.
func actionItemsEnd(lines []string) int {
	start := findLine(lines, "## Action Items")
	if start < 0 {
		return -1
	}
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") || strings.HasPrefix(lines[i], "Conversation ") {
			return i
		}
	}
	return len(lines)
}

func findLine(lines []string, target string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == target {
			return i
		}
	}
	return -1
}
