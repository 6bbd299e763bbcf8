// Package session carries the caller's bearer credential explicitly through
// every course API call. The token is opaque and never validated here.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

const (
	// StorageKey is the single key the browser persists the token under.
	StorageKey = "token"

	bearerPrefix = "Bearer "
)

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type Session struct {
	token string
}

// Load reads the token once. An empty token yields an unauthorized session, not an error.
func Load(ctx context.Context, provider TokenProvider) (Session, error) {
	const op = "session.Load"

	if provider == nil {
		return Session{}, nil
	}

	token, err := provider.Token(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return Session{token: strings.TrimSpace(token)}, nil
}

func New(token string) Session { return Session{token: strings.TrimSpace(token)} }

func (s Session) Authorized() bool { return s.token != "" }

func (s Session) Token() string { return s.token }

// Key identifies the session without exposing the token.
func (s Session) Key() string {
	if !s.Authorized() {
		return ""
	}
	sum := sha256.Sum256([]byte(s.token))
	return hex.EncodeToString(sum[:8])
}

// Apply sets the Authorization header when a token is present.
func (s Session) Apply(req *http.Request) {
	if s.Authorized() {
		req.Header.Set("Authorization", bearerPrefix+s.token)
	}
}

type StaticProvider string

func (p StaticProvider) Token(context.Context) (string, error) { return string(p), nil }

// RequestProvider reads the token the browser forwarded: the Authorization
// header first, then the storage cookie.
type RequestProvider struct {
	r *http.Request
}

func FromRequest(r *http.Request) RequestProvider { return RequestProvider{r: r} }

func (p RequestProvider) Token(context.Context) (string, error) {
	if h := p.r.Header.Get("Authorization"); len(h) > len(bearerPrefix) &&
		strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return h[len(bearerPrefix):], nil
	}

	c, err := p.r.Cookie(StorageKey)
	if err != nil {
		return "", nil
	}
	return c.Value, nil
}
