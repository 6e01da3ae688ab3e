package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type staticID string

func (s staticID) Generate() string { return string(s) }

func newSymmetric(t *testing.T, clock *fixedClock) *Symmetric {
	t.Helper()
	s, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "jzmart",
		Audiences: []string{"storefront"},
		TTL:       30 * 24 * time.Hour,
		Clock:     clock,
		UUID:      staticID("jti-1"),
	})
	require.NoError(t, err)
	return s
}

func TestNewHS512_ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestSymmetric_GenerateVerify(t *testing.T) {
	clock := &fixedClock{now: time.Now().Truncate(time.Second)}
	s := newSymmetric(t, clock)

	token, err := s.Generate(42, "a@x.com")
	require.NoError(t, err)

	clm, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), clm.UserID)
	assert.Equal(t, "a@x.com", clm.UserEmail)
	assert.Equal(t, "42", clm.Subject)
	assert.Equal(t, "jti-1", clm.ID)
	assert.Equal(t, 30*24*time.Hour, s.TTL())
}

func TestSymmetric_VerifyExpired(t *testing.T) {
	clock := &fixedClock{now: time.Now().Truncate(time.Second)}
	s := newSymmetric(t, clock)

	token, err := s.Generate(42, "a@x.com")
	require.NoError(t, err)

	clock.now = clock.now.Add(31 * 24 * time.Hour)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_VerifyGarbage(t *testing.T) {
	s := newSymmetric(t, &fixedClock{now: time.Now()})
	_, err := s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetAuth(ctx))

	ctx = SetAuth(ctx, Claims{UserID: 7, UserEmail: "b@x.com"})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, int64(7), clm.UserID)
}
