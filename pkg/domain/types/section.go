package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Section represents a canonical journal section name
type Section string

const (
	SectionSummary      Section = "Summary"
	SectionAtmosphere   Section = "Atmosphere"
	SectionKeyTakeaways Section = "Key Takeaways"
	SectionActionItems  Section = "Action Items"
)

// AllSections returns all canonical sections
func AllSections() []Section {
	return []Section{
		SectionSummary,
		SectionAtmosphere,
		SectionKeyTakeaways,
		SectionActionItems,
	}
}

// DaySections returns the day-level sections in their fixed output order
func DaySections() []Section {
	return []Section{
		SectionAtmosphere,
		SectionKeyTakeaways,
		SectionActionItems,
	}
}

// IsValid checks if the section is valid
func (s Section) IsValid() bool {
	switch s {
	case SectionSummary, SectionAtmosphere, SectionKeyTakeaways, SectionActionItems:
		return true
	default:
		return false
	}
}

// String returns the canonical display name of the section
func (s Section) String() string {
	return string(s)
}

// Variants returns the accepted source spellings of the section name.
// The canonical spelling is always first. Upstream summaries spell
// "Key Takeaways" in several ways, so that section carries extra variants.
func (s Section) Variants() []string {
	if s == SectionKeyTakeaways {
		return []string{"Key Takeaways", "Key Take Aways", "Key Take aways", "Key Takeways"}
	}
	return []string{string(s)}
}

// MatchHeading reports whether the given heading text refers to this
// section. Comparison is case-insensitive with all whitespace collapsed,
// so "key  take aways" matches Key Takeaways.
func (s Section) MatchHeading(text string) bool {
	key := collapse(text)
	for _, v := range s.Variants() {
		if key == collapse(v) {
			return true
		}
	}
	return false
}

// MatchSection returns the canonical section for a heading text, if any
func MatchSection(text string) (Section, bool) {
	for _, s := range AllSections() {
		if s.MatchHeading(text) {
			return s, true
		}
	}
	return "", false
}

// ParseSection parses a string into a Section by canonical name
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if !sec.IsValid() {
		return "", goerr.New("invalid section", goerr.V("name", s))
	}
	return sec, nil
}

func collapse(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
