package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshBuffer is how close to expiry we treat a token as stale
const refreshBuffer = 60 * time.Second

// PersistentTokenSource refreshes tokens as needed and hands every new
// token to a persistence callback before returning it, so the stored
// credentials never fall behind the live ones.
type PersistentTokenSource struct {
	config  *oauth2.Config
	token   *oauth2.Token
	persist func(*oauth2.Token) error
	mu      sync.Mutex
}

// NewPersistentTokenSource wraps the given token. persist may be nil
// when the caller does not need refreshed tokens written back.
func NewPersistentTokenSource(cfg *oauth2.Config, token *oauth2.Token, persist func(*oauth2.Token) error) *PersistentTokenSource {
	return &PersistentTokenSource{
		config:  cfg,
		token:   token,
		persist: persist,
	}
}

// Token returns a valid token, refreshing and persisting if necessary
func (ts *PersistentTokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshBuffer {
		return ts.token, nil
	}

	src := ts.config.TokenSource(context.Background(), ts.token)
	fresh, err := src.Token()
	if err != nil {
		return nil, err
	}

	if ts.persist != nil {
		if err := ts.persist(fresh); err != nil {
			return nil, err
		}
	}

	ts.token = fresh
	return fresh, nil
}
