package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/interfaces"
	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
	"github.com/hive-scribe/beescribe/pkg/utils/safe"
)

// Sentinel errors for journal persistence. ErrNotFound wraps the
// repository-agnostic sentinel so callers can match either.
var (
	ErrNotFound      = goerr.Wrap(interfaces.ErrJournalNotFound, "journal file not found")
	ErrAlreadyExists = goerr.New("journal file already exists")
)

// Store persists one markdown file per journal date under a root
// directory, optionally partitioned into MM-MonthName sub-directories,
// plus an optional running facts ledger file.
type Store struct {
	root           string
	monthPartition bool
	ledgerPath     string
}

var _ interfaces.JournalRepository = &Store{}

// Option configures a Store
type Option func(*Store)

// WithMonthPartition places each date file under a MM-MonthName
// directory instead of the flat root.
func WithMonthPartition() Option {
	return func(s *Store) {
		s.monthPartition = true
	}
}

// WithFactsLedger enables the flat append-only facts ledger at path
func WithFactsLedger(path string) Option {
	return func(s *Store) {
		s.ledgerPath = path
	}
}

// New creates a Store rooted at dir, creating it if needed
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, goerr.New("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}

	s := &Store{root: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) path(date types.DateKey) string {
	name := date.String() + ".md"
	if s.monthPartition {
		return filepath.Join(s.root, date.MonthDir(), name)
	}
	return filepath.Join(s.root, name)
}

// ExistingDates scans the root for date-named markdown files. Both the
// flat and the month-partitioned layout are scanned so switching the
// option keeps already written dates idempotent.
func (s *Store) ExistingDates(ctx context.Context) (map[types.DateKey]bool, error) {
	dates := map[types.DateKey]bool{}

	patterns := []string{
		filepath.Join(s.root, "*.md"),
		filepath.Join(s.root, "*", "*.md"),
	}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan output directory", goerr.V("pattern", pattern))
		}
		for _, match := range matches {
			stem := strings.TrimSuffix(filepath.Base(match), ".md")
			date := types.DateKey(stem)
			if date.Validate() == nil {
				dates[date] = true
			}
		}
	}

	logging.From(ctx).Debug("Scanned existing journal files", "count", len(dates))
	return dates, nil
}

// Exists reports whether a journal file exists for the date
func (s *Store) Exists(ctx context.Context, date types.DateKey) (bool, error) {
	_, err := os.Stat(s.path(date))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, goerr.Wrap(err, "failed to stat journal file", goerr.V("date", date))
}

// WriteDay writes a new journal file for the date as a whole string.
// An existing file is never overwritten.
func (s *Store) WriteDay(ctx context.Context, date types.DateKey, content string) error {
	if err := date.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to write invalid date")
	}

	path := s.path(date)
	if _, err := os.Stat(path); err == nil {
		return goerr.Wrap(ErrAlreadyExists, "skipping existing journal file", goerr.V("date", date))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create journal directory", goerr.V("path", path))
	}
	if err := writeFileAtomic(ctx, path, content); err != nil {
		return goerr.Wrap(err, "failed to write journal file", goerr.V("date", date))
	}

	logging.From(ctx).Info("Wrote journal file", "date", date, "path", path, "bytes", len(content))
	return nil
}

// ReadDay returns the content of an existing journal file
func (s *Store) ReadDay(ctx context.Context, date types.DateKey) (string, error) {
	data, err := os.ReadFile(s.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return "", goerr.Wrap(ErrNotFound, "no journal file for date", goerr.V("date", date))
		}
		return "", goerr.Wrap(err, "failed to read journal file", goerr.V("date", date))
	}
	return string(data), nil
}

// UpdateDay rewrites an existing journal file as a whole string
func (s *Store) UpdateDay(ctx context.Context, date types.DateKey, content string) error {
	path := s.path(date)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrNotFound, "no journal file for date", goerr.V("date", date))
		}
		return goerr.Wrap(err, "failed to stat journal file", goerr.V("date", date))
	}
	if err := writeFileAtomic(ctx, path, content); err != nil {
		return goerr.Wrap(err, "failed to update journal file", goerr.V("date", date))
	}

	logging.From(ctx).Info("Updated journal file", "date", date, "path", path)
	return nil
}

// AppendFactsLedger appends a dated fact batch to the ledger file.
// A batch for a date that already has its marker line is skipped.
func (s *Store) AppendFactsLedger(ctx context.Context, date types.DateKey, facts []*model.Fact) error {
	if s.ledgerPath == "" || len(facts) == 0 {
		return nil
	}

	marker := fmt.Sprintf("## Facts %s", date)

	existing, err := os.ReadFile(s.ledgerPath)
	if err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to read facts ledger", goerr.V("path", s.ledgerPath))
	}
	if strings.Contains(string(existing), marker) {
		logging.From(ctx).Debug("Facts ledger already has batch", "date", date)
		return nil
	}

	var sb strings.Builder
	sb.WriteString("\n" + marker + "\n")
	for _, fact := range facts {
		sb.WriteString("* " + fact.Text + "\n")
	}

	f, err := os.OpenFile(s.ledgerPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return goerr.Wrap(err, "failed to open facts ledger", goerr.V("path", s.ledgerPath))
	}
	defer safe.Close(ctx, f)

	if _, err := f.WriteString(sb.String()); err != nil {
		return goerr.Wrap(err, "failed to append facts ledger", goerr.V("path", s.ledgerPath))
	}

	logging.From(ctx).Info("Appended facts ledger", "date", date, "facts", len(facts))
	return nil
}

// writeFileAtomic writes via a temporary file and rename so a crashed
// run never leaves a half-written journal behind.
func writeFileAtomic(ctx context.Context, path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".journal-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() error { return os.Remove(tmpName) }

	if _, err := tmp.WriteString(content); err != nil {
		safe.Close(ctx, tmp)
		safe.Remove(ctx, cleanup)
		return err
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(ctx, cleanup)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		safe.Remove(ctx, cleanup)
		return err
	}
	return nil
}
