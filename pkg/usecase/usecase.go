package usecase

import (
	"time"

	"github.com/hive-scribe/beescribe/pkg/domain/interfaces"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
)

// UseCases bundles the journal synchronization operations
type UseCases struct {
	bee       interfaces.BeeClient
	repo      interfaces.JournalRepository
	assembler *journal.Assembler
	loc       *time.Location
	now       func() time.Time
}

// Option configures UseCases
type Option func(*UseCases)

// WithLocation sets the timezone used for day grouping
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.loc = loc
	}
}

// WithClock replaces the wall clock, used by tests to pin "today"
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithAssembler replaces the document assembler
func WithAssembler(a *journal.Assembler) Option {
	return func(uc *UseCases) {
		uc.assembler = a
	}
}

// New creates UseCases over the given API client and repository
func New(bee interfaces.BeeClient, repo interfaces.JournalRepository, opts ...Option) *UseCases {
	uc := &UseCases{
		bee:  bee,
		repo: repo,
		loc:  time.Local,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.assembler == nil {
		uc.assembler = journal.NewAssembler(journal.WithLocation(uc.loc))
	}
	return uc
}
