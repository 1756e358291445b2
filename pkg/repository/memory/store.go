package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/interfaces"
	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// Sentinel errors mirroring the filesystem repository. ErrNotFound
// wraps the repository-agnostic sentinel so callers can match either.
var (
	ErrNotFound      = goerr.Wrap(interfaces.ErrJournalNotFound, "journal entry not found")
	ErrAlreadyExists = goerr.New("journal entry already exists")
)

// Store is an in-memory JournalRepository for tests and development
type Store struct {
	mu     sync.Mutex
	days   map[types.DateKey]string
	ledger strings.Builder
	writes int
}

var _ interfaces.JournalRepository = &Store{}

// New creates an empty in-memory store
func New() *Store {
	return &Store{days: map[types.DateKey]string{}}
}

// Seed pre-populates a date, marking it as already materialized
func (s *Store) Seed(date types.DateKey, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[date] = content
}

// Writes returns how many WriteDay calls succeeded
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Ledger returns the accumulated facts ledger content
func (s *Store) Ledger() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.String()
}

func (s *Store) ExistingDates(ctx context.Context) (map[types.DateKey]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make(map[types.DateKey]bool, len(s.days))
	for date := range s.days {
		dates[date] = true
	}
	return dates, nil
}

func (s *Store) Exists(ctx context.Context, date types.DateKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.days[date]
	return ok, nil
}

func (s *Store) WriteDay(ctx context.Context, date types.DateKey, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.days[date]; ok {
		return goerr.Wrap(ErrAlreadyExists, "skipping existing entry", goerr.V("date", date))
	}
	s.days[date] = content
	s.writes++
	return nil
}

func (s *Store) ReadDay(ctx context.Context, date types.DateKey) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.days[date]
	if !ok {
		return "", goerr.Wrap(ErrNotFound, "no entry for date", goerr.V("date", date))
	}
	return content, nil
}

func (s *Store) UpdateDay(ctx context.Context, date types.DateKey, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.days[date]; !ok {
		return goerr.Wrap(ErrNotFound, "no entry for date", goerr.V("date", date))
	}
	s.days[date] = content
	return nil
}

func (s *Store) AppendFactsLedger(ctx context.Context, date types.DateKey, facts []*model.Fact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker := fmt.Sprintf("## Facts %s", date)
	if strings.Contains(s.ledger.String(), marker) {
		return nil
	}
	s.ledger.WriteString("\n" + marker + "\n")
	for _, fact := range facts {
		s.ledger.WriteString("* " + fact.Text + "\n")
	}
	return nil
}
