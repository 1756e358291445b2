package journal_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
)

func someFacts() []*model.Fact {
	return []*model.Fact{
		{ID: "f1", Text: "Prefers tea over coffee"},
		{ID: "f2", Text: "Lives near the park"},
	}
}

func TestInsertFactsAfterActionItems(t *testing.T) {
	doc := strings.Join([]string{
		"# Daily Summary - 2024-03-01",
		"## Action Items",
		"- call Bob",
		"## Conversations",
		"Conversation 1 (ID: x)",
	}, "\n")

	got, inserted := journal.InsertFacts(doc, someFacts())
	gt.Bool(t, inserted).True()

	actions := strings.Index(got, "## Action Items")
	facts := strings.Index(got, "### Facts")
	convs := strings.Index(got, "## Conversations")
	gt.Bool(t, actions < facts).True()
	gt.Bool(t, facts < convs).True()
	gt.Bool(t, strings.Contains(got, "* Prefers tea over coffee")).True()
	gt.Bool(t, strings.Contains(got, "* Lives near the park")).True()
}

func TestInsertFactsBeforeConversations(t *testing.T) {
	doc := strings.Join([]string{
		"# Daily Summary - 2024-03-01",
		"Good day.",
		"## Conversations",
		"Conversation 1 (ID: x)",
	}, "\n")

	got, inserted := journal.InsertFacts(doc, someFacts())
	gt.Bool(t, inserted).True()
	gt.Bool(t, strings.Index(got, "### Facts") < strings.Index(got, "## Conversations")).True()
}

func TestInsertFactsAppendsWhenNoAnchor(t *testing.T) {
	doc := "# Daily Summary - 2024-03-01\nGood day."

	got, inserted := journal.InsertFacts(doc, someFacts())
	gt.Bool(t, inserted).True()
	gt.Bool(t, strings.HasPrefix(got, doc)).True()
	gt.Bool(t, strings.Contains(got, "### Facts")).True()
}

func TestInsertFactsIdempotent(t *testing.T) {
	doc := "# Daily Summary - 2024-03-01\n## Conversations\nConversation 1 (ID: x)"

	once, inserted := journal.InsertFacts(doc, someFacts())
	gt.Bool(t, inserted).True()

	twice, inserted := journal.InsertFacts(once, someFacts())
	gt.Bool(t, inserted).False()
	gt.Value(t, twice).Equal(once)
}

func TestInsertFactsEmptyBatch(t *testing.T) {
	doc := "# Daily Summary - 2024-03-01"
	got, inserted := journal.InsertFacts(doc, nil)
	gt.Bool(t, inserted).False()
	gt.Value(t, got).Equal(doc)
}
