package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"pizzabot/internal/chat"
)

var (
	// ErrInvalidToken is returned for tokens that are malformed or not signed
	// with the registry secret.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpired is returned when the token is valid but its session is gone.
	ErrExpired = errors.New("session expired")
)

type entry struct {
	mu       sync.Mutex
	session  *chat.Session
	lastSeen time.Time
}

// Option configures a Registry
type Option func(*Registry)

// WithClock overrides the time source used for idle expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// Registry holds the live chat sessions. Calls on one session are serialized;
// different sessions proceed in parallel. Sessions idle for longer than the
// TTL are dropped the next time the registry is used.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry signing tokens with secret.
func NewRegistry(secret string, ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a session in language and returns it with its token.
func (r *Registry) Create(language string) (*chat.Session, string, error) {
	id := uuid.New().String()
	now := r.now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Id:       id,
		IssuedAt: now.Unix(),
		Subject:  "chat-session",
	}).SignedString(r.secret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s := chat.NewSession(id, language)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(now)
	r.sessions[id] = &entry{session: s, lastSeen: now}
	return s, token, nil
}

// ParseToken verifies token and returns the session id it carries.
func (r *Registry) ParseToken(token string) (string, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Id == "" {
		return "", ErrInvalidToken
	}
	return claims.Id, nil
}

// With runs fn on the session behind token while holding that session's lock.
func (r *Registry) With(token string, fn func(*chat.Session) error) error {
	id, err := r.ParseToken(token)
	if err != nil {
		return err
	}

	now := r.now()
	r.mu.Lock()
	r.evictLocked(now)
	e, ok := r.sessions[id]
	if ok {
		e.lastSeen = now
	}
	r.mu.Unlock()
	if !ok {
		return ErrExpired
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(r.now())
	return len(r.sessions)
}

func (r *Registry) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
