package auth

import (
	"fmt"
	"strings"
	"sync"
)

// TokenSource supplies the bearer token attached to outgoing API requests.
// The editor and API client receive one via injection instead of reading
// ambient storage themselves.
type TokenSource interface {
	AccessToken() (string, error)
}

// StaticTokenSource returns a fixed token for the lifetime of a session.
type StaticTokenSource struct {
	mu    sync.RWMutex
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", fmt.Errorf("no access token available")
	}
	return s.token, nil
}

// SetToken replaces the stored token, e.g. after a re-login.
func (s *StaticTokenSource) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// TokenExtractor parses bearer tokens out of Authorization headers.
type TokenExtractor struct{}

func NewTokenExtractor() *TokenExtractor {
	return &TokenExtractor{}
}

// ExtractToken returns the token from an "Authorization: Bearer <token>"
// header value.
func (te *TokenExtractor) ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is empty")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("authorization header must be of form 'Bearer <token>'")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}

	return token, nil
}
