// Package mappls talks to the Mappls (MapmyIndia) place search API. Access
// tokens come from an OAuth client-credentials grant and are cached until
// shortly before they expire.
package mappls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultTokenURL  = "https://outpost.mapmyindia.com/api/security/oauth/token"
	DefaultSearchURL = "https://atlas.mapmyindia.com/api/places/search/json"

	// expiryBuffer is subtracted from the lifetime the server reports.
	expiryBuffer = 5 * time.Minute
)

// ErrNotConfigured is returned when no client credentials are set.
var ErrNotConfigured = errors.New("mappls: client credentials not configured")

// TokenSource hands out a cached access token, refreshing it on demand.
// Concurrent callers that find the cache empty share a single refresh.
type TokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	http         *http.Client
	now          func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenSource returns a TokenSource. Empty tokenURL uses DefaultTokenURL
// and a nil httpClient gets a 10 second timeout.
func NewTokenSource(clientID, clientSecret, tokenURL string, httpClient *http.Client) *TokenSource {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		http:         httpClient,
		now:          time.Now,
	}
}

// SetClock replaces the time source.
func (s *TokenSource) SetClock(now func() time.Time) { s.now = now }

// Configured reports whether client credentials are present.
func (s *TokenSource) Configured() bool {
	return s.clientID != "" && s.clientSecret != ""
}

// Token returns the cached token while it is valid and otherwise fetches a
// new one.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if tok, ok := s.cached(); ok {
		return tok, nil
	}

	v, err, _ := s.group.Do("token", func() (any, error) {
		// Another caller may have refreshed while we waited to get here.
		if tok, ok := s.cached(); ok {
			return tok, nil
		}
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && s.now().Before(s.expiry) {
		return s.token, true
	}
	return "", false
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("mappls.TokenSource.refresh: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	issued := s.now()
	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mappls.TokenSource.refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mappls.TokenSource.refresh: unexpected status %d", resp.StatusCode)
	}
	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("mappls.TokenSource.refresh: decode: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("mappls.TokenSource.refresh: empty access token")
	}

	s.mu.Lock()
	s.token = body.AccessToken
	s.expiry = issued.Add(time.Duration(body.ExpiresIn)*time.Second - expiryBuffer)
	s.mu.Unlock()

	return body.AccessToken, nil
}
