package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/weareasocialyazilim/travelmatch-moderation/interfaces"
)

const defaultWordsPath = "/v1/moderation/words"

// WordListAdapter fetches the moderator-curated word list from a central
// blocklist endpoint over HTTP.
type WordListAdapter struct {
	client   *resty.Client
	endpoint string
}

// Options configure the adapter.
type Options struct {
	// BaseURL of the blocklist service. Required.
	BaseURL string
	// Path of the word-list resource. Defaults to /v1/moderation/words.
	Path string
	// APIKey is sent as a bearer token when set.
	APIKey  string
	Timeout time.Duration
}

// NewWordListAdapter creates an adapter instance.
func NewWordListAdapter(opt Options) (*WordListAdapter, error) {
	if strings.TrimSpace(opt.BaseURL) == "" {
		return nil, errors.New("remote: base URL is required")
	}
	if strings.TrimSpace(opt.Path) == "" {
		opt.Path = defaultWordsPath
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(opt.Timeout).
		SetBaseURL(strings.TrimRight(opt.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if strings.TrimSpace(opt.APIKey) != "" {
		client.SetAuthToken(opt.APIKey)
	}

	return &WordListAdapter{
		client:   client,
		endpoint: "/" + strings.TrimLeft(opt.Path, "/"),
	}, nil
}

// GetWords downloads the current word list. Accepts either a bare JSON
// array or an object with a "words" field.
func (a *WordListAdapter) GetWords(ctx context.Context) ([]string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		Get(a.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("remote: status %d: %s", resp.StatusCode(), resp.String())
	}
	return parseWords(resp.Body())
}

func parseWords(body []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, errors.New("remote: empty response body")
	}

	if strings.HasPrefix(trimmed, "[") {
		var words []string
		if err := json.Unmarshal([]byte(trimmed), &words); err != nil {
			return nil, err
		}
		return cleanWords(words), nil
	}

	var wrapped struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Words == nil {
		return nil, errors.New("remote: unsupported word list format")
	}
	return cleanWords(wrapped.Words), nil
}

func cleanWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

var _ interfaces.WordSource = (*WordListAdapter)(nil)
