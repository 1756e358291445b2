package usecase_test

import (
	"context"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/repository/memory"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
	"github.com/hive-scribe/beescribe/pkg/usecase"
)

// mockBeeClient is a stub implementation of interfaces.BeeClient
type mockBeeClient struct {
	conversations []*model.Conversation
	details       map[types.ConversationID]*model.ConversationDetail
	detailErr     error
	facts         []*model.Fact
	fetchErr      error

	detailCalls []types.ConversationID
}

func (m *mockBeeClient) Conversations(_ context.Context) iter.Seq2[*model.Conversation, error] {
	return func(yield func(*model.Conversation, error) bool) {
		for _, conv := range m.conversations {
			if !yield(conv, nil) {
				return
			}
		}
		if m.fetchErr != nil {
			yield(nil, m.fetchErr)
		}
	}
}

func (m *mockBeeClient) ConversationDetail(_ context.Context, id types.ConversationID) (*model.ConversationDetail, error) {
	m.detailCalls = append(m.detailCalls, id)
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	if d, ok := m.details[id]; ok {
		return d, nil
	}
	return &model.ConversationDetail{}, nil
}

func (m *mockBeeClient) Facts(_ context.Context) iter.Seq2[*model.Fact, error] {
	return func(yield func(*model.Fact, error) bool) {
		for _, fact := range m.facts {
			if !yield(fact, nil) {
				return
			}
		}
		if m.fetchErr != nil {
			yield(nil, m.fetchErr)
		}
	}
}

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newConv(id string, start time.Time, summary string) *model.Conversation {
	return &model.Conversation{
		ID:        types.ConversationID(id),
		StartTime: start,
		Summary:   summary,
	}
}

func TestSyncConversationsWritesOneFilePerDate(t *testing.T) {
	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "## Summary\nDay one."),
			newConv("c2", time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), ""),
			newConv("c3", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), "## Summary\nDay two."),
		},
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	result, err := uc.SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	gt.Number(t, result.ConversationsSeen).Equal(3)
	gt.Number(t, result.FilesWritten).Equal(2)

	dayOne, err := repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(dayOne, "Day one.")).True()
	gt.Bool(t, strings.Contains(dayOne, "Conversation 1 (ID: c1)")).True()
	gt.Bool(t, strings.Contains(dayOne, "Conversation 2 (ID: c2)")).True()
}

func TestSyncConversationsIdempotent(t *testing.T) {
	newClient := func() *mockBeeClient {
		return &mockBeeClient{
			conversations: []*model.Conversation{
				newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "## Summary\nDay one."),
			},
		}
	}
	repo := memory.New()

	first, err := usecase.New(newClient(), repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow)).SyncConversations(context.Background())
	gt.NoError(t, err).Required()
	gt.Number(t, first.FilesWritten).Equal(1)

	second, err := usecase.New(newClient(), repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow)).SyncConversations(context.Background())
	gt.NoError(t, err).Required()
	gt.Number(t, second.FilesWritten).Equal(0)
	gt.Number(t, repo.Writes()).Equal(1)
}

func TestSyncConversationsExcludesToday(t *testing.T) {
	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("today", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), "## Summary\nIn progress."),
			newConv("past", time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC), "## Summary\nDone."),
		},
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	result, err := uc.SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	gt.Number(t, result.FilesWritten).Equal(1)
	exists, _ := repo.Exists(context.Background(), "2024-03-10")
	gt.Bool(t, exists).False()
}

func TestSyncConversationsSkipFetchForExistingDates(t *testing.T) {
	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), ""),
			newConv("c2", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), ""),
		},
	}
	repo := memory.New()
	repo.Seed("2024-03-01", "already there")

	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	result, err := uc.SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	// The existing date never triggers a detail fetch
	gt.Array(t, client.detailCalls).Length(1)
	gt.Value(t, client.detailCalls[0]).Equal(types.ConversationID("c2"))
	gt.Number(t, result.FilesWritten).Equal(1)

	content, err := repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Value(t, content).Equal("already there")
}

func TestSyncConversationsDetailFailureDegrades(t *testing.T) {
	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "## Summary\nA day."),
		},
		detailErr: context.DeadlineExceeded,
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	result, err := uc.SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	gt.Number(t, result.DetailFailures).Equal(1)
	gt.Number(t, result.FilesWritten).Equal(1)

	content, err := repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(content, "Conversation 1 (ID: c1)")).True()
	gt.Bool(t, strings.Contains(content, "Transcript")).False()
}

func TestSyncConversationsTranscriptRendered(t *testing.T) {
	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), ""),
		},
		details: map[types.ConversationID]*model.ConversationDetail{
			"c1": {Transcriptions: []model.Transcription{{
				Utterances: []model.Utterance{{Speaker: "1", Text: "hello"}},
			}}},
		},
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	_, err := uc.SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	content, err := repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(content, "**Speaker 1**: hello")).True()
}

func TestSyncConversationsCustomScorePolicy(t *testing.T) {
	newClient := func() *mockBeeClient {
		return &mockBeeClient{
			conversations: []*model.Conversation{
				newConv("early", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), "plain early prose"),
				newConv("late", time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), "## Atmosphere\nTense."),
			},
		}
	}

	// Default weights prefer the summary with recognizable sections
	repo := memory.New()
	_, err := usecase.New(newClient(), repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow)).SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	content, err := repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(content, "Tense.")).True()

	// Zero weights make every summary tie, so the earliest wins
	flat := journal.NewAssembler(
		journal.WithLocation(time.UTC),
		journal.WithScorePolicy(journal.ScorePolicy{}))
	repo = memory.New()
	_, err = usecase.New(newClient(), repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow),
		usecase.WithAssembler(flat)).SyncConversations(context.Background())
	gt.NoError(t, err).Required()

	content, err = repo.ReadDay(context.Background(), "2024-03-01")
	gt.NoError(t, err)
	gt.Bool(t, strings.Contains(content, "plain early prose")).True()
	gt.Bool(t, strings.Contains(content, "Tense.")).False()
}

func TestSyncConversationsCancelledBeforeWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	client := &mockBeeClient{
		conversations: []*model.Conversation{
			newConv("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), ""),
		},
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	cancel()
	result, err := uc.SyncConversations(ctx)
	gt.NoError(t, err).Required()

	gt.Bool(t, result.Interrupted).True()
	gt.Number(t, repo.Writes()).Equal(0)
}

func TestSyncConversationsFetchErrorAborts(t *testing.T) {
	client := &mockBeeClient{
		fetchErr: context.DeadlineExceeded,
	}
	repo := memory.New()
	uc := usecase.New(client, repo,
		usecase.WithLocation(time.UTC), usecase.WithClock(fixedNow))

	_, err := uc.SyncConversations(context.Background())
	gt.Error(t, err)
}
