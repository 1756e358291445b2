package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

// SyncResult holds the counters of one conversation sync run
type SyncResult struct {
	RunID             string
	ConversationsSeen int
	DatesSkipped      int
	DetailFailures    int
	FilesWritten      int
	Interrupted       bool
}

// SyncConversations fetches conversations page by page, groups them by
// local calendar date, and writes one sanitized markdown document per
// date that is not yet materialized. The current local date is never
// finalized. Already materialized dates are excluded before any detail
// fetch happens. A cancelled context stops the run cleanly before the
// next fetch or write.
func (uc *UseCases) SyncConversations(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{RunID: uuid.NewString()}
	logger := logging.From(ctx).With("runID", result.RunID)
	ctx = logging.With(ctx, logger)

	existing, err := uc.repo.ExistingDates(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list existing journal dates")
	}
	logger.Info("Starting conversation sync", "existingDates", len(existing))

	today := types.NewDateKey(uc.now(), uc.loc)
	buckets := map[types.DateKey]*model.DayBucket{}
	skipped := map[types.DateKey]bool{}

	for conv, err := range uc.bee.Conversations(ctx) {
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Sync interrupted during fetch")
				result.Interrupted = true
				return result, nil
			}
			return nil, goerr.Wrap(err, "conversation fetch failed")
		}

		result.ConversationsSeen++
		date := conv.LocalDate(uc.loc)

		if date >= today {
			logger.Debug("Skipping in-progress or future date", "id", conv.ID, "date", date)
			skipped[date] = true
			continue
		}
		if existing[date] {
			logger.Debug("Skipping already materialized date", "id", conv.ID, "date", date)
			skipped[date] = true
			continue
		}

		// Detail fetch failure degrades to a transcript-less entry, the
		// conversation itself is kept.
		detail, err := uc.bee.ConversationDetail(ctx, conv.ID)
		if err != nil {
			logger.Warn("Failed to fetch conversation detail", "id", conv.ID, "error", err)
			result.DetailFailures++
			detail = &model.ConversationDetail{}
		}

		bucket, ok := buckets[date]
		if !ok {
			bucket = &model.DayBucket{Date: date}
			buckets[date] = bucket
		}
		bucket.Entries = append(bucket.Entries, model.Entry{Conversation: conv, Detail: detail})
		logger.Debug("Collected conversation", "id", conv.ID, "date", date)
	}

	result.DatesSkipped = len(skipped)

	dates := make([]types.DateKey, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	for _, date := range dates {
		if ctx.Err() != nil {
			logger.Info("Sync interrupted before write", "date", date)
			result.Interrupted = true
			return result, nil
		}

		bucket := buckets[date]
		bucket.Sort()
		doc := journal.Sanitize(uc.assembler.Assemble(bucket))

		if err := uc.repo.WriteDay(ctx, date, doc); err != nil {
			return nil, goerr.Wrap(err, "failed to write journal file", goerr.V("date", date))
		}
		result.FilesWritten++
	}

	logger.Info("Conversation sync completed",
		"conversations", result.ConversationsSeen,
		"filesWritten", result.FilesWritten,
		"datesSkipped", result.DatesSkipped,
		"detailFailures", result.DetailFailures)
	return result, nil
}
