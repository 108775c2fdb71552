package portfolio

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// TokenRegistry issues and checks admin capability tokens. The session
// cookie only carries a token; holding a cookie is not enough, the token
// must also be live here. Tokens die on logout, on expiry, and when the
// process restarts.
type TokenRegistry struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenRegistry creates a registry whose tokens expire after ttl.
func NewTokenRegistry(ttl time.Duration) *TokenRegistry {
	return &TokenRegistry{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a new token.
func (r *TokenRegistry) Issue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for t, exp := range r.tokens {
		if !now.Before(exp) {
			delete(r.tokens, t)
		}
	}
	r.tokens[token] = now.Add(r.ttl)
	return token, nil
}

// Valid reports whether token was issued here and has not expired or been
// revoked.
func (r *TokenRegistry) Valid(token string) bool {
	if token == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.tokens[token]
	if !ok {
		return false
	}
	if !r.now().Before(exp) {
		delete(r.tokens, token)
		return false
	}
	return true
}

// Revoke invalidates token.
func (r *TokenRegistry) Revoke(token string) {
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
}
