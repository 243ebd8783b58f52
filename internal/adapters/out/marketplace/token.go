// Package marketplace is the HTTP client for the marketplace API: dispatch
// confirmation and delivery code verification, behind OAuth client
// credentials, a rate limiter and a circuit breaker.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// expirySkew is subtracted from the token lifetime so a token is refreshed
// before it actually expires mid-request.
const expirySkew = 30 * time.Second

// TokenProvider supplies bearer tokens for marketplace calls. Invalidate
// drops the cached token, forcing a refresh on the next call; the client
// invokes it after a 401.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// ClientCredentialsTokenProvider obtains tokens via the OAuth client
// credentials grant and caches them until shortly before expiry.
type ClientCredentialsTokenProvider struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClientCredentialsTokenProvider creates a provider for the given
// credentials. A nil httpClient falls back to http.DefaultClient.
func NewClientCredentialsTokenProvider(httpClient *http.Client, tokenURL, clientID, clientSecret string) *ClientCredentialsTokenProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClientCredentialsTokenProvider{
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Token returns a cached token while it is still fresh, otherwise requests a
// new one.
func (p *ClientCredentialsTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiresAt) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	p.token = body.AccessToken
	p.expiresAt = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - expirySkew)
	return p.token, nil
}

// Invalidate drops the cached token.
func (p *ClientCredentialsTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiresAt = time.Time{}
}
