package bee

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
)

// flexString decodes a JSON string or number into a string. Upstream
// identifiers and speaker labels show up as both.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(ErrInvalidResponse, "unexpected JSON type for string field")
	}
	*s = flexString(n.String())
	return nil
}

type conversationsResponse struct {
	Conversations []conversationDTO `json:"conversations"`
	TotalPages    int               `json:"totalPages"`
}

type conversationDTO struct {
	ID              flexString   `json:"id"`
	StartTime       string       `json:"start_time"`
	ShortSummary    string       `json:"short_summary"`
	Summary         string       `json:"summary"`
	PrimaryLocation *locationDTO `json:"primary_location"`
}

type locationDTO struct {
	Address string `json:"address"`
}

func (d *conversationDTO) toModel() (*model.Conversation, error) {
	if d.ID == "" {
		return nil, goerr.Wrap(ErrInvalidResponse, "conversation record without id")
	}
	start, err := time.Parse(time.RFC3339, d.StartTime)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed start_time",
			goerr.V("id", string(d.ID)), goerr.V("start_time", d.StartTime))
	}

	conv := &model.Conversation{
		ID:           types.ConversationID(d.ID),
		StartTime:    start,
		ShortSummary: d.ShortSummary,
		Summary:      d.Summary,
	}
	if d.PrimaryLocation != nil {
		conv.Address = d.PrimaryLocation.Address
	}
	return conv, nil
}

type conversationDetailResponse struct {
	Conversation struct {
		Transcriptions []transcriptionDTO `json:"transcriptions"`
	} `json:"conversation"`
}

type transcriptionDTO struct {
	Utterances []utteranceDTO `json:"utterances"`
}

type utteranceDTO struct {
	Speaker flexString `json:"speaker"`
	Text    string     `json:"text"`
}

func (r *conversationDetailResponse) toModel() *model.ConversationDetail {
	detail := &model.ConversationDetail{}
	for _, t := range r.Conversation.Transcriptions {
		tr := model.Transcription{}
		for _, u := range t.Utterances {
			tr.Utterances = append(tr.Utterances, model.Utterance{
				Speaker: string(u.Speaker),
				Text:    u.Text,
			})
		}
		detail.Transcriptions = append(detail.Transcriptions, tr)
	}
	return detail
}

type factsResponse struct {
	Facts      []factDTO `json:"facts"`
	TotalPages int       `json:"totalPages"`
}

type factDTO struct {
	ID        flexString `json:"id"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"created_at"`
}

func (d *factDTO) toModel() (*model.Fact, error) {
	if d.CreatedAt == "" {
		return nil, goerr.Wrap(ErrInvalidResponse, "fact record without created_at",
			goerr.V("id", string(d.ID)))
	}
	created, err := time.Parse(time.RFC3339, d.CreatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed created_at",
			goerr.V("id", string(d.ID)), goerr.V("created_at", d.CreatedAt))
	}
	return &model.Fact{
		ID:        types.FactID(d.ID),
		Text:      d.Text,
		CreatedAt: created,
	}, nil
}
