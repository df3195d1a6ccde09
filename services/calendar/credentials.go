// File: services/calendar/credentials.go
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"smartsched/config"
	"smartsched/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

const tokenCacheKey = "calendar:oauth:token"

// CredentialStore owns the Google OAuth credential lifecycle: the
// authorization URL, the code exchange, and token persistence in Redis so a
// restart keeps the calendar connection.
type CredentialStore struct {
	conf  *oauth2.Config
	cache *redis.Client
}

// NewCredentialStore builds a store from the application OAuth config.
func NewCredentialStore(cache *redis.Client) *CredentialStore {
	return &CredentialStore{
		conf: &oauth2.Config{
			ClientID:     config.AppConfig.GoogleClientID,
			ClientSecret: config.AppConfig.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  config.AppConfig.GoogleRedirectURI,
			Scopes: []string{
				gcal.CalendarReadonlyScope,
				gcal.CalendarEventsScope,
			},
		},
		cache: cache,
	}
}

// AuthURL returns the Google consent URL to start the OAuth flow.
func (s *CredentialStore) AuthURL() string {
	return s.conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token and persists it.
func (s *CredentialStore) Exchange(ctx context.Context, code string) error {
	tok, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return s.saveToken(ctx, tok)
}

// IsAuthenticated reports whether a stored token is usable, either still
// valid or refreshable.
func (s *CredentialStore) IsAuthenticated(ctx context.Context) bool {
	tok, err := s.loadToken(ctx)
	if err != nil {
		return false
	}
	return tok.Valid() || tok.RefreshToken != ""
}

// TokenSource returns a token source backed by the stored token. Refreshed
// tokens are written back to Redis so the refresh survives restarts.
func (s *CredentialStore) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := s.loadToken(ctx)
	if err != nil {
		return nil, err
	}
	return &persistingTokenSource{
		store: s,
		ctx:   ctx,
		src:   s.conf.TokenSource(ctx, tok),
		last:  tok.AccessToken,
	}, nil
}

func (s *CredentialStore) saveToken(ctx context.Context, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	// Tokens carry their own expiry; no TTL on the cache entry.
	if err := s.cache.Set(ctx, tokenCacheKey, b, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *CredentialStore) loadToken(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.cache.Get(ctx, tokenCacheKey).Result()
	if err == redis.Nil {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, fmt.Errorf("failed to parse stored token: %w", err)
	}
	return &tok, nil
}

// persistingTokenSource writes refreshed tokens back to the store.
type persistingTokenSource struct {
	store *CredentialStore
	ctx   context.Context
	src   oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := p.store.saveToken(p.ctx, tok); err != nil {
			utils.GetLogger().Warn("failed to persist refreshed token", zap.Error(err))
		}
	}
	return tok, nil
}
