package types

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ConversationID is the upstream identifier of a conversation
type ConversationID string

// String returns the string representation of the conversation ID
func (id ConversationID) String() string {
	return string(id)
}

// FactID is the upstream identifier of a fact
type FactID string

// String returns the string representation of the fact ID
func (id FactID) String() string {
	return string(id)
}

// DateKey identifies one journal day in YYYY-MM-DD form, derived from a
// timestamp converted to the local timezone.
type DateKey string

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewDateKey derives the DateKey for a timestamp in the given location
func NewDateKey(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(t.In(loc).Format("2006-01-02"))
}

// Validate checks if the DateKey is a well-formed YYYY-MM-DD string
func (d DateKey) Validate() error {
	if !dateKeyPattern.MatchString(string(d)) {
		return goerr.New("date key must be YYYY-MM-DD", goerr.V("date", string(d)))
	}
	if _, err := time.Parse("2006-01-02", string(d)); err != nil {
		return goerr.New("date key is not a calendar date", goerr.V("date", string(d)))
	}
	return nil
}

// String returns the string representation of the date key
func (d DateKey) String() string {
	return string(d)
}

// Time returns the date at midnight UTC. The key must be valid.
func (d DateKey) Time() time.Time {
	t, _ := time.Parse("2006-01-02", string(d))
	return t
}

// MonthDir returns the month partition directory name, e.g. "03-March"
func (d DateKey) MonthDir() string {
	t := d.Time()
	return fmt.Sprintf("%02d-%s", int(t.Month()), t.Month().String())
}
