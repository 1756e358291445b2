package model

import (
	"sort"
	"time"

	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// Conversation represents one recorded conversation as reported by the
// upstream memory API. Immutable once fetched; identified by ID.
type Conversation struct {
	ID           types.ConversationID
	StartTime    time.Time
	ShortSummary string // optional free text, may embed markdown
	Summary      string // optional free text, may embed markdown
	Address      string // optional, flattened from primary_location.address
}

// LocalDate returns the journal date key of the conversation in the
// given location.
func (c *Conversation) LocalDate(loc *time.Location) types.DateKey {
	return types.NewDateKey(c.StartTime, loc)
}

// Utterance is one speaker-attributed line of transcribed speech
type Utterance struct {
	Speaker string
	Text    string
}

// Transcription is an ordered run of utterances within a conversation
type Transcription struct {
	Utterances []Utterance
}

// ConversationDetail holds the lazily fetched transcript data of a
// conversation. A zero-value detail is valid and means no transcript.
type ConversationDetail struct {
	Transcriptions []Transcription
}

// Utterances returns the utterances of the first transcription. The
// boolean result makes "no transcription available" an explicit state:
// it is false when the detail is nil, has no transcriptions, or the
// first transcription is empty.
func (d *ConversationDetail) Utterances() ([]Utterance, bool) {
	if d == nil || len(d.Transcriptions) == 0 {
		return nil, false
	}
	us := d.Transcriptions[0].Utterances
	if len(us) == 0 {
		return nil, false
	}
	return us, true
}

// Entry pairs a conversation with its (possibly empty) detail
type Entry struct {
	Conversation *Conversation
	Detail       *ConversationDetail
}

// DayBucket collects the conversations whose local start date is a
// given calendar day. A conversation belongs to exactly one bucket,
// determined solely by its local start date.
type DayBucket struct {
	Date    types.DateKey
	Entries []Entry
}

// Sort orders the entries by ascending start time. Order among equal
// start times is preserved.
func (b *DayBucket) Sort() {
	sort.SliceStable(b.Entries, func(i, j int) bool {
		return b.Entries[i].Conversation.StartTime.Before(b.Entries[j].Conversation.StartTime)
	})
}
