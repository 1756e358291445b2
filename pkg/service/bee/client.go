package bee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hive-scribe/beescribe/pkg/domain/model"
	"github.com/hive-scribe/beescribe/pkg/domain/types"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
	"github.com/hive-scribe/beescribe/pkg/utils/safe"
)

// Service provides access to the upstream personal memory API
type Service interface {
	// Conversations iterates over all conversations, page by page
	Conversations(ctx context.Context) iter.Seq2[*model.Conversation, error]

	// ConversationDetail fetches transcript data for one conversation
	ConversationDetail(ctx context.Context, id types.ConversationID) (*model.ConversationDetail, error)

	// Facts iterates over all confirmed facts, page by page
	Facts(ctx context.Context) iter.Seq2[*model.Fact, error]
}

// client implements Service over plain HTTP
type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	maxPages   int
}

// Option configures the client
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithMaxPages caps how many pages a single iteration fetches. Zero
// means no cap.
func WithMaxPages(n int) Option {
	return func(c *client) {
		c.maxPages = n
	}
}

// New creates a new API client for the given endpoint and key
func New(endpoint, apiKey string, opts ...Option) (Service, error) {
	if endpoint == "" {
		return nil, goerr.New("API endpoint is required")
	}
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}

	c := &client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Conversations fetches conversation pages sequentially until the
// upstream reports no further pages, the page cap is hit, or the
// context is cancelled. A page fetch failure ends the iteration with an
// error; malformed records within a page are logged and skipped.
func (c *client) Conversations(ctx context.Context) iter.Seq2[*model.Conversation, error] {
	return func(yield func(*model.Conversation, error) bool) {
		for page := 1; ; page++ {
			if c.maxPages > 0 && page > c.maxPages {
				logging.From(ctx).Info("Reached page cap", "maxPages", c.maxPages)
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, goerr.Wrap(err, "aborted before page fetch", goerr.V("page", page)))
				return
			}

			var resp conversationsResponse
			if err := c.get(ctx, "/me/conversations", url.Values{"page": {strconv.Itoa(page)}}, &resp); err != nil {
				yield(nil, goerr.Wrap(err, "failed to fetch conversations page", goerr.V("page", page)))
				return
			}

			logging.From(ctx).Info("Fetched conversations page",
				"page", page,
				"count", len(resp.Conversations),
				"totalPages", resp.TotalPages)

			if len(resp.Conversations) == 0 {
				return
			}
			for i := range resp.Conversations {
				conv, err := resp.Conversations[i].toModel()
				if err != nil {
					logging.From(ctx).Warn("Skipping malformed conversation record", "error", err)
					continue
				}
				if !yield(conv, nil) {
					return
				}
			}

			if page >= max(resp.TotalPages, 1) {
				return
			}
		}
	}
}

// ConversationDetail fetches the transcript data of one conversation.
// Failures are returned as-is; degrading to an empty detail is the
// caller's decision.
func (c *client) ConversationDetail(ctx context.Context, id types.ConversationID) (*model.ConversationDetail, error) {
	var resp conversationDetailResponse
	path := fmt.Sprintf("/me/conversations/%s", url.PathEscape(id.String()))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch conversation detail", goerr.V("id", id))
	}
	return resp.toModel(), nil
}

// Facts fetches confirmed facts page by page. Records without a usable
// created_at are logged and skipped.
func (c *client) Facts(ctx context.Context) iter.Seq2[*model.Fact, error] {
	return func(yield func(*model.Fact, error) bool) {
		for page := 1; ; page++ {
			if c.maxPages > 0 && page > c.maxPages {
				logging.From(ctx).Info("Reached page cap", "maxPages", c.maxPages)
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, goerr.Wrap(err, "aborted before page fetch", goerr.V("page", page)))
				return
			}

			query := url.Values{"confirmed": {"confirmed"}, "page": {strconv.Itoa(page)}}
			var resp factsResponse
			if err := c.get(ctx, "/me/facts", query, &resp); err != nil {
				yield(nil, goerr.Wrap(err, "failed to fetch facts page", goerr.V("page", page)))
				return
			}

			logging.From(ctx).Info("Fetched facts page",
				"page", page,
				"count", len(resp.Facts),
				"totalPages", resp.TotalPages)

			if len(resp.Facts) == 0 {
				return
			}
			for i := range resp.Facts {
				fact, err := resp.Facts[i].toModel()
				if err != nil {
					logging.From(ctx).Warn("Skipping malformed fact record", "error", err)
					continue
				}
				if !yield(fact, nil) {
					return
				}
			}

			if page >= max(resp.TotalPages, 1) {
				return
			}
		}
	}
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("url", u))
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("url", u))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.Wrap(ErrUnexpectedStatus, "upstream returned non-2xx",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", u),
			goerr.V("body", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("url", u))
	}
	return nil
}
