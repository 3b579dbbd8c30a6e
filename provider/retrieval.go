package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrRetrievalDisabled is returned by a nil-configured retriever.
var ErrRetrievalDisabled = errors.New("retrieval not configured")

// HTTPRetriever is a Retriever backed by a news/document search endpoint.
// The endpoint is expected to answer GET <base>/search?q=<query> with either
// a JSON body carrying a "content" field or plain prose.
type HTTPRetriever struct {
	config RetrievalConfig
	client *http.Client
}

// NewHTTPRetriever creates an HTTPRetriever from configuration. Returns nil
// when no base URL is configured, which callers treat as retrieval disabled.
func NewHTTPRetriever(cfg RetrievalConfig) *HTTPRetriever {
	merged := DefaultRetrievalConfig()
	merged.Merge(&cfg)

	if merged.BaseURL == "" {
		return nil
	}
	return &HTTPRetriever{
		config: merged,
		client: &http.Client{Timeout: merged.Timeout},
	}
}

// Updates fetches prose context for the query.
func (r *HTTPRetriever) Updates(ctx context.Context, query string) (string, error) {
	if r == nil {
		return "", ErrRetrievalDisabled
	}

	endpoint := fmt.Sprintf("%s/search?q=%s", r.config.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build retrieval request: %w", err)
	}
	if r.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.config.APIKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("retrieval request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read retrieval response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("retrieval endpoint returned %d: %s", resp.StatusCode, truncate(data, 200))
	}

	// JSON bodies carry the prose under "content"; anything else is prose.
	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Content != "" {
		return parsed.Content, nil
	}

	return strings.TrimSpace(string(data)), nil
}
