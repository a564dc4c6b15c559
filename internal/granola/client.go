package granola

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/granolaexport/internal/logging"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.granola.ai"

	// clientVersion is the desktop app version we impersonate. The API
	// rejects requests without a recognized client identity.
	clientVersion = "5.354.0"

	// defaultPageSize is the listing page size.
	defaultPageSize = 100
)

// Client provides read-only access to the Granola API using a bearer token
// harvested from the desktop app's session cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int

	// pageDelay spaces out listing pages, retryDelay precedes the single
	// retry on a transient failure. Both are shortened in tests.
	pageDelay  time.Duration
	retryDelay time.Duration
}

// NewClient creates an API client. The token source is typically the static
// source from auth.Credential; baseURL falls back to DefaultBaseURL when empty.
func NewClient(ctx context.Context, source oauth2.TokenSource, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: oauth2.NewClient(ctx, source),
		baseURL:    baseURL,
		pageSize:   defaultPageSize,
		pageDelay:  100 * time.Millisecond,
		retryDelay: 2 * time.Second,
	}
}

// listRequest is the body of the document listing endpoint.
type listRequest struct {
	Limit                  int  `json:"limit"`
	Offset                 int  `json:"offset"`
	IncludeLastViewedPanel bool `json:"include_last_viewed_panel"`
}

type listResponse struct {
	Docs []json.RawMessage `json:"docs"`
}

type transcriptRequest struct {
	DocumentID string `json:"document_id"`
}

// ListDocuments enumerates all meeting documents, paging by offset until the
// API returns a short page. includePanel requests the AI summary panel with
// each document; the transcripts run leaves it off to keep pages small.
func (c *Client) ListDocuments(ctx context.Context, includePanel bool) ([]Document, error) {
	logger := logging.WithOperation(slog.Default(), "granola.listDocuments")

	var all []Document
	offset := 0
	for {
		logger.Debug("fetching document page", slog.Int("offset", offset))

		body, err := c.post(ctx, "/v2/get-documents", listRequest{
			Limit:                  c.pageSize,
			Offset:                 offset,
			IncludeLastViewedPanel: includePanel,
		})
		if err != nil {
			return nil, fmt.Errorf("listing documents at offset %d: %w", offset, err)
		}

		var page listResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("malformed document listing at offset %d: %w", offset, err)
		}
		if len(page.Docs) == 0 {
			break
		}

		for _, raw := range page.Docs {
			var doc Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("malformed document in listing at offset %d: %w", offset, err)
			}
			doc.Raw = raw
			all = append(all, doc)
		}

		if len(page.Docs) < c.pageSize {
			break
		}
		offset += c.pageSize

		if err := c.pause(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}

	logger.Debug("document listing complete", logging.Count(len(all)))
	return all, nil
}

// GetTranscript fetches the transcript entries for one document. A 404 means
// the meeting was never transcribed; that is reported as (nil, nil), not an
// error.
func (c *Client) GetTranscript(ctx context.Context, documentID string) ([]TranscriptEntry, error) {
	body, err := c.post(ctx, "/v1/get-document-transcript", transcriptRequest{DocumentID: documentID})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching transcript for %s: %w", documentID, err)
	}

	var entries []TranscriptEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("malformed transcript for %s: %w", documentID, err)
	}
	return entries, nil
}

// post sends a JSON request to the API. Transport failures and 5xx responses
// are retried once after retryDelay; 4xx responses are never retried.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := c.doRequest(ctx, path, payload)
	if err == nil || !retryable(err) {
		return body, err
	}

	slog.Default().Debug("retrying after transient API failure",
		logging.Path(path), logging.Err(err))
	if werr := c.pause(ctx, c.retryDelay); werr != nil {
		return nil, werr
	}
	return c.doRequest(ctx, path, payload)
}

func (c *Client) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", "Granola/"+clientVersion)
	req.Header.Set("X-Client-Version", clientVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 200)}
	}
	return respBody, nil
}

// retryable reports whether an error warrants the single retry: transport
// failures and server-side status codes qualify, client errors do not.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

// pause sleeps for d unless the context is cancelled first.
func (c *Client) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
