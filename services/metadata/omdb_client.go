package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoAPIKey is returned when the client was constructed without an OMDb
// API key. Callers treat it like any other transient failure.
var ErrNoAPIKey = errors.New("omdb api key not configured")

// VerifyOutcome is the result of a title lookup that actually reached a
// decision. Transport failures are reported separately as errors so the
// caller can choose its own policy for them.
type VerifyOutcome struct {
	Found   bool
	Message string // human-readable rejection reason when Found is false
}

// OMDbClient looks up TV series titles against the OMDb API.
type OMDbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

// NewOMDbClient creates a client with the given key and per-lookup timeout.
// baseURL is overridable for tests; pass "" for the public endpoint.
func NewOMDbClient(apiKey, baseURL string, timeout time.Duration) *OMDbClient {
	if baseURL == "" {
		baseURL = "https://www.omdbapi.com/"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OMDbClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// VerifyTitleExists asks OMDb whether a series with exactly this title
// exists. The lookup is attempted once with no retry. A non-nil error means
// the answer is unknown (timeout, transport failure, undecodable response);
// a nil error means OMDb reached a verdict, carried in the outcome.
func (c *OMDbClient) VerifyTitleExists(ctx context.Context, title string) (VerifyOutcome, error) {
	if c.apiKey == "" {
		return VerifyOutcome{}, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", "series")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return VerifyOutcome{}, fmt.Errorf("build omdb request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return VerifyOutcome{}, fmt.Errorf("omdb lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerifyOutcome{}, fmt.Errorf("omdb lookup failed: %s", resp.Status)
	}

	var data struct {
		Response string `json:"Response"`
		Type     string `json:"Type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return VerifyOutcome{}, fmt.Errorf("decode omdb response: %w", err)
	}

	if data.Response == "True" && data.Type == "series" {
		return VerifyOutcome{Found: true}, nil
	}

	return VerifyOutcome{
		Found:   false,
		Message: fmt.Sprintf("TV show '%s' not found in IMDB. Please verify the title is correct.", title),
	}, nil
}
