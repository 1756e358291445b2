package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// ErrJournalNotFound is the shared not-found sentinel. Every
// JournalRepository implementation wraps it, so callers can detect a
// missing journal entry without knowing the concrete store.
var ErrJournalNotFound = goerr.New("journal entry not found")

// JournalRepository defines the interface for journal file persistence
type JournalRepository interface {
	// ExistingDates returns the set of dates that already have a
	// materialized journal file.
	ExistingDates(ctx context.Context) (map[types.DateKey]bool, error)

	// Exists reports whether a journal file exists for the date
	Exists(ctx context.Context, date types.DateKey) (bool, error)

	// WriteDay writes a new journal file for the date as a whole. It
	// fails with ErrAlreadyExists when the date is already materialized.
	WriteDay(ctx context.Context, date types.DateKey, content string) error

	// ReadDay returns the content of an existing journal file, or
	// ErrNotFound.
	ReadDay(ctx context.Context, date types.DateKey) (string, error)

	// UpdateDay rewrites an existing journal file, or ErrNotFound
	UpdateDay(ctx context.Context, date types.DateKey, content string) error

	// AppendFactsLedger appends a dated fact batch to the running facts
	// ledger, if one is configured. Appending is idempotent per date.
	AppendFactsLedger(ctx context.Context, date types.DateKey, facts []*model.Fact) error
}
