package journal

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

// ScorePolicy weighs how a conversation summary is scored when picking
// the representative summary of a day. The weights are a heuristic over
// undocumented upstream formatting, not a fixed contract, so they stay
// configurable.
type ScorePolicy struct {
	HeaderPoints    int
	AllPresentBonus int
}

// DefaultScorePolicy returns the standard scoring weights
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{HeaderPoints: 10, AllPresentBonus: 20}
}

// Assembler combines one day's conversations into a markdown document
type Assembler struct {
	policy ScorePolicy
	loc    *time.Location
}

// AssemblerOption configures an Assembler
type AssemblerOption func(*Assembler)

// WithScorePolicy overrides the representative-summary scoring weights
func WithScorePolicy(p ScorePolicy) AssemblerOption {
	return func(a *Assembler) {
		a.policy = p
	}
}

// WithLocation sets the timezone used to derive the day heading
func WithLocation(loc *time.Location) AssemblerOption {
	return func(a *Assembler) {
		a.loc = loc
	}
}

// NewAssembler creates an Assembler with default policy and local time
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		policy: DefaultScorePolicy(),
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Score rates a summary by the presence of recognizable day-level
// sub-headers. Summary, Atmosphere and Key Takeaways each count
// HeaderPoints; a summary carrying all three gets AllPresentBonus on
// top.
func (a *Assembler) Score(summary string) int {
	if summary == "" {
		return 0
	}
	score := 0
	present := 0
	for _, sec := range []types.Section{types.SectionSummary, types.SectionAtmosphere, types.SectionKeyTakeaways} {
		if HasSection(summary, sec) {
			score += a.policy.HeaderPoints
			present++
		}
	}
	if present == 3 {
		score += a.policy.AllPresentBonus
	}
	return score
}

// Assemble renders a day bucket into a single ordered markdown
// document: a day heading, the lead prose and day-level sections from
// the representative summary, then one block per conversation in
// ascending start-time order. Returns an empty string for an empty
// bucket.
func (a *Assembler) Assemble(bucket *model.DayBucket) string {
	if bucket == nil || len(bucket.Entries) == 0 {
		return ""
	}

	date := bucket.Date
	if date == "" {
		date = bucket.Entries[0].Conversation.LocalDate(a.loc)
	}

	var content []string
	content = append(content, fmt.Sprintf("# Daily Summary - %s", date))
	content = append(content, "")

	if summary, ok := a.representativeSummary(bucket); ok {
		if lead := stripDaySections(summary); lead != "" {
			content = append(content, lead)
			content = append(content, "")
		}
		// The bullet-run fallback in Extract can hand two sections the
		// same list, so a body already emitted under one heading is not
		// emitted again under another.
		emitted := map[string]bool{}
		for _, sec := range types.DaySections() {
			body := normalizeBullets(Extract(summary, sec))
			if strings.TrimSpace(body) == "" || emitted[body] {
				continue
			}
			emitted[body] = true
			content = append(content, "## "+sec.String())
			content = append(content, body+"\n")
		}
	}

	content = append(content, "## Conversations")
	content = append(content, "")

	for i, entry := range bucket.Entries {
		conv := entry.Conversation
		content = append(content, fmt.Sprintf("Conversation %d (ID: %s)", i+1, conv.ID))

		if conv.Address != "" {
			content = append(content, fmt.Sprintf("Location: %s\n", conv.Address))
		}
		if conv.ShortSummary != "" {
			content = append(content, Normalize(conv.ShortSummary)+"\n")
		}

		if utterances, ok := entry.Detail.Utterances(); ok {
			content = append(content, "#### Transcript")
			for _, u := range utterances {
				if u.Speaker == "" || u.Text == "" {
					continue
				}
				content = append(content, fmt.Sprintf("**Speaker %s**: %s", u.Speaker, u.Text))
			}
		}
	}

	return strings.Join(content, "\n")
}

// representativeSummary picks the summary that supplies the day-level
// sections. The highest score wins, earlier conversations win ties.
func (a *Assembler) representativeSummary(bucket *model.DayBucket) (string, bool) {
	best := ""
	bestScore := -1
	candidates := 0

	for _, entry := range bucket.Entries {
		summary := entry.Conversation.Summary
		if summary == "" {
			continue
		}
		candidates++
		if score := a.Score(summary); score > bestScore {
			best = summary
			bestScore = score
		}
	}

	if candidates == 0 {
		return "", false
	}
	if bestScore == 0 {
		// None of the summaries carried a recognizable sub-header. The
		// upstream format may have changed, so make it visible instead
		// of degrading silently.
		logging.Default().Warn("no recognizable day sections in any summary",
			"date", bucket.Date, "candidates", candidates)
	}
	return best, true
}

var (
	leadHeadingMarks = regexp.MustCompile(`(?m)^#{1,3}\s*`)
	leadSummaryLabel = regexp.MustCompile(`(?m)^Summary:\s*`)
	leadBulletLines  = regexp.MustCompile(`(?m)^\s*[-*•]\s+.*$`)
	blankRuns        = regexp.MustCompile(`\n{3,}`)
)

// stripDaySections reduces a summary to its lead prose: the Atmosphere,
// Key Takeaways and Action Items sub-blocks are removed (they are
// emitted once under canonical headings), along with summary labels,
// leftover heading marks and any bullet list that belongs to a removed
// block.
func stripDaySections(summary string) string {
	text := summary
	for _, sec := range types.DaySections() {
		text = removeSectionBlock(text, sec)
	}
	text = leadSummaryLabel.ReplaceAllString(text, "")
	text = summaryHeadingLine.ReplaceAllString(text, "")
	text = leadHeadingMarks.ReplaceAllString(text, "")
	text = leadBulletLines.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// removeSectionBlock drops the heading or label line of the section and
// everything up to the next heading, label or end of text.
func removeSectionBlock(text string, sec types.Section) string {
	lines := strings.Split(text, "\n")
	var kept []string
	skipping := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if skipping {
			if headingLine.MatchString(line) || labelLine.MatchString(trimmed) {
				skipping = false
			} else {
				continue
			}
		}

		name := trimmed
		if m := headingLine.FindStringSubmatch(line); m != nil {
			name = m[2]
		}
		if sec.MatchHeading(trimLabel(name)) {
			skipping = true
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// normalizeBullets rewrites every bullet line to a single leading "- "
func normalizeBullets(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	for i, line := range lines {
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			lines[i] = "- " + strings.TrimSpace(m[1])
		}
	}
	return strings.Join(lines, "\n")
}
