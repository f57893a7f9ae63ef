package mappls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Client searches places with a bearer token from a TokenSource.
type Client struct {
	tokens    *TokenSource
	searchURL string
	http      *http.Client
}

// NewClient returns a Client. Empty searchURL uses DefaultSearchURL.
func NewClient(tokens *TokenSource, searchURL string, httpClient *http.Client) *Client {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	if httpClient == nil {
		httpClient = tokens.http
	}
	return &Client{tokens: tokens, searchURL: searchURL, http: httpClient}
}

// Configured reports whether the underlying credentials are present.
func (c *Client) Configured() bool { return c.tokens.Configured() }

// Token exposes the current access token for browser-side map SDKs.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// Search returns the suggestedLocations entries for query exactly as the
// API sent them. A response without the field yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("mappls.Client.Search: %w", err)
	}

	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("mappls.Client.Search: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mappls.Client.Search: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mappls.Client.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mappls.Client.Search: unexpected status %d", resp.StatusCode)
	}
	var body struct {
		SuggestedLocations []json.RawMessage `json:"suggestedLocations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("mappls.Client.Search: decode: %w", err)
	}
	if body.SuggestedLocations == nil {
		return []json.RawMessage{}, nil
	}
	return body.SuggestedLocations, nil
}
