package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/interfaces"
	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

// FactsResult holds the counters of one facts pass
type FactsResult struct {
	FactsSeen    int
	FilesUpdated int
	DatesSkipped int
	Interrupted  bool
}

// SyncFacts fetches confirmed facts, groups them by local creation
// date, and inserts a facts section into each matching journal file
// that does not already carry one. When a facts ledger is configured,
// every dated batch is also appended there, idempotently.
func (uc *UseCases) SyncFacts(ctx context.Context) (*FactsResult, error) {
	logger := logging.From(ctx)
	result := &FactsResult{}

	byDate := map[types.DateKey][]*model.Fact{}
	for fact, err := range uc.bee.Facts(ctx) {
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Facts pass interrupted during fetch")
				result.Interrupted = true
				return result, nil
			}
			return nil, goerr.Wrap(err, "facts fetch failed")
		}
		result.FactsSeen++
		date := fact.LocalDate(uc.loc)
		byDate[date] = append(byDate[date], fact)
	}

	dates := make([]types.DateKey, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	for _, date := range dates {
		if ctx.Err() != nil {
			logger.Info("Facts pass interrupted before write", "date", date)
			result.Interrupted = true
			return result, nil
		}

		facts := byDate[date]

		if err := uc.repo.AppendFactsLedger(ctx, date, facts); err != nil {
			return nil, goerr.Wrap(err, "failed to append facts ledger", goerr.V("date", date))
		}

		content, err := uc.repo.ReadDay(ctx, date)
		if err != nil {
			if errors.Is(err, interfaces.ErrJournalNotFound) {
				logger.Debug("No journal file for fact date", "date", date, "facts", len(facts))
				result.DatesSkipped++
				continue
			}
			return nil, goerr.Wrap(err, "failed to read journal file", goerr.V("date", date))
		}

		updated, inserted := journal.InsertFacts(content, facts)
		if !inserted {
			logger.Debug("Facts already present", "date", date)
			result.DatesSkipped++
			continue
		}
		if err := uc.repo.UpdateDay(ctx, date, updated); err != nil {
			return nil, goerr.Wrap(err, "failed to update journal file", goerr.V("date", date))
		}
		logger.Info("Inserted facts", "date", date, "facts", len(facts))
		result.FilesUpdated++
	}

	logger.Info("Facts pass completed",
		"facts", result.FactsSeen,
		"filesUpdated", result.FilesUpdated,
		"datesSkipped", result.DatesSkipped)
	return result, nil
}
