package model

import (
	"time"

	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// Fact represents one confirmed fact from the upstream memory API
type Fact struct {
	ID        types.FactID
	Text      string
	CreatedAt time.Time
}

// LocalDate returns the journal date key the fact belongs to, derived
// from its creation time in the given location.
func (f *Fact) LocalDate(loc *time.Location) types.DateKey {
	return types.NewDateKey(f.CreatedAt, loc)
}
