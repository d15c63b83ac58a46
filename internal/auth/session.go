package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a web login stays valid.
const DefaultSessionTTL = 8 * time.Hour

// Sessions is an in-memory registry of logged-in web sessions, keyed by an
// opaque token carried in a cookie. There is no ambient logged-in flag; the
// handler asks the registry about the request's own token.
type Sessions struct {
	mu  sync.Mutex
	ttl time.Duration
	set map[string]time.Time
}

// NewSessions creates a session registry with the given time-to-live.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{ttl: ttl, set: make(map[string]time.Time)}
}

// Start mints a new session token.
func (s *Sessions) Start() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.set[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token
}

// Valid reports whether the token belongs to a live session. Expired tokens
// are dropped on the way out.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.set[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.set, token)
		return false
	}
	return true
}

// End invalidates the token.
func (s *Sessions) End(token string) {
	s.mu.Lock()
	delete(s.set, token)
	s.mu.Unlock()
}
