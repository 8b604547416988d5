// Package catalog is a typed client for the third-party movie catalog API
// (a TMDB-compatible service). The client is observability-only middleware
// around the outbound calls: failures are classified and logged, then
// returned unchanged to the caller. It never retries, caches, or recovers.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is used when no CATALOG_API_BASE_URL override is configured.
const DefaultBaseURL = "https://api.themoviedb.org/3"

const (
	requestTimeout = 10 * time.Second

	// error response bodies are kept whole in the returned error but capped in logs
	maxErrorBodyBytes = 8 * 1024
)

// Client handles communication with the catalog API.
// Configuration is immutable after construction and shared by all calls.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a catalog client. An empty baseURL selects DefaultBaseURL.
// An empty apiKey sends unauthenticated requests (key handling belongs to the
// caller's deployment, not this layer).
func NewClient(baseURL string, apiKey string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// newRequest builds a catalog request with the default headers attached.
func (c *Client) newRequest(ctx context.Context, method string, path string, query url.Values) (*http.Request, error) {
	if c.apiKey != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("api_key", c.apiKey)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// get issues a catalog request and decodes the JSON response into out.
//
// Failed calls are classified into one of three categories (see errors.go)
// and logged before the error is returned to the caller. The call_id ties the
// log lines for one outbound call together.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	callID := uuid.New().String()

	req, err := c.newRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		clientErr := NewInternalError(err, "creating catalog request")
		c.logger.Error("catalog request could not be constructed",
			slog.String("call_id", callID),
			slog.String("path", path),
			slog.String("error", clientErr.Message),
		)
		return clientErr
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		clientErr := NewConnectionError(err)
		c.logger.Error("no response from catalog API",
			slog.String("call_id", callID),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", clientErr.Message),
		)
		return clientErr
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		clientErr := NewAPIError(res, body)

		loggedBody := clientErr.Body
		if len(loggedBody) > maxErrorBodyBytes {
			loggedBody = loggedBody[:maxErrorBodyBytes]
		}
		c.logger.Error("catalog API returned an error response",
			slog.String("call_id", callID),
			slog.Int("status", res.StatusCode),
			slog.String("url", req.URL.String()),
			slog.String("body", loggedBody),
		)
		return clientErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		clientErr := NewInternalError(err, "decoding catalog response")
		c.logger.Error("catalog response could not be decoded",
			slog.String("call_id", callID),
			slog.String("url", req.URL.String()),
			slog.String("error", clientErr.Message),
		)
		return clientErr
	}

	return nil
}
