package interfaces

import (
	"context"
	"iter"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// BeeClient defines the interface to the upstream memory API
type BeeClient interface {
	// Conversations iterates over all conversations, fetching pages
	// sequentially until the upstream reports no further pages or the
	// configured page cap is reached.
	Conversations(ctx context.Context) iter.Seq2[*model.Conversation, error]

	// ConversationDetail fetches the transcript data of one conversation
	ConversationDetail(ctx context.Context, id types.ConversationID) (*model.ConversationDetail, error)

	// Facts iterates over all confirmed facts, page by page
	Facts(ctx context.Context) iter.Seq2[*model.Fact, error]
}
