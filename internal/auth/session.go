package auth

import (
	"sync"
	"time"

	"lead_console/platform/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the bearer credential for the lifetime of one console
// run. The expiry claim is decoded without signature verification: the
// client has no secret and the check is a UX device, not a security
// boundary — the server still rejects stale tokens with 401.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewSession decodes the token's expiry claim and wraps it in a session.
func NewSession(token string) (*Session, error) {
	if token == "" {
		return nil, apperr.Unauthorized("empty token")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "malformed token", err)
	}

	expiresAt := time.Time{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &Session{token: token, expiresAt: expiresAt}, nil
}

// Token returns the bearer token, or an empty string once invalidated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the decoded expiry. The zero time means the token
// carried no exp claim.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Expired reports whether the token's expiry has passed.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return true
	}
	if s.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.expiresAt)
}

// Invalidate clears the credential, e.g. after a 401 response.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Watch invokes onExpire once the session passes its expiry. It returns
// a stop function; a session without an exp claim is never reported.
func (s *Session) Watch(onExpire func()) (stop func()) {
	s.mu.RLock()
	expiresAt := s.expiresAt
	s.mu.RUnlock()

	if expiresAt.IsZero() {
		return func() {}
	}

	timer := time.AfterFunc(time.Until(expiresAt), onExpire)
	return func() { timer.Stop() }
}
