package session

import (
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/cart"
	"pizzabot/internal/chat"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRegistry_CreateAndWith(t *testing.T) {
	r := NewRegistry("secret", time.Hour)

	s, token, err := r.Create("urdu")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Urdu", s.Language)
	assert.Equal(t, 1, r.Len())

	id, err := r.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)

	err = r.With(token, func(got *chat.Session) error {
		assert.Same(t, s, got)
		got.Cart.Add(cart.Item{Name: "FizzUp", Price: 80})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(80), s.Cart.Total())
}

func TestRegistry_RejectsForeignTokens(t *testing.T) {
	r := NewRegistry("secret", time.Hour)
	_, token, err := r.Create("English")
	require.NoError(t, err)

	other := NewRegistry("other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	err = r.With("not-a-token", func(*chat.Session) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.StandardClaims{Id: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = r.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	clock := newClock()
	r := NewRegistry("secret", 10*time.Minute, WithClock(clock.Now))

	_, idle, err := r.Create("English")
	require.NoError(t, err)
	_, active, err := r.Create("English")
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	require.NoError(t, r.With(active, func(*chat.Session) error { return nil }))

	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, r.With(idle, func(*chat.Session) error { return nil }), ErrExpired)
	assert.NoError(t, r.With(active, func(*chat.Session) error { return nil }))
}

func TestRegistry_SerializesSession(t *testing.T) {
	r := NewRegistry("secret", time.Hour)
	s, token, err := r.Create("English")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With(token, func(s *chat.Session) error {
				s.Cart.Add(cart.Item{Name: "Cola Next", Price: 80})
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Cart.Len())
}
