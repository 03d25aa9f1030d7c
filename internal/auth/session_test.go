package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func TestNewSessionDecodesExpiry(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "admin-1", "exp": expires.Unix()})

	session, err := NewSession(token)

	require.NoError(t, err)
	assert.Equal(t, token, session.Token())
	assert.True(t, session.ExpiresAt().Equal(expires))
	assert.False(t, session.Expired())
}

func TestSessionExpired(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "admin-1", "exp": time.Now().Add(-time.Minute).Unix()})

	session, err := NewSession(token)

	require.NoError(t, err)
	assert.True(t, session.Expired())
}

func TestSessionWithoutExpClaimNeverExpires(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "admin-1"})

	session, err := NewSession(token)

	require.NoError(t, err)
	assert.True(t, session.ExpiresAt().IsZero())
	assert.False(t, session.Expired())
}

func TestSessionInvalidate(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "admin-1", "exp": time.Now().Add(time.Hour).Unix()})
	session, err := NewSession(token)
	require.NoError(t, err)

	session.Invalidate()

	assert.Empty(t, session.Token())
	assert.True(t, session.Expired())
}

func TestNewSessionRejectsMalformedToken(t *testing.T) {
	_, err := NewSession("not-a-jwt")
	assert.Error(t, err)

	_, err = NewSession("")
	assert.Error(t, err)
}

func TestSessionWatchFiresOnExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "admin-1", "exp": time.Now().Add(50 * time.Millisecond).Unix()})
	session, err := NewSession(token)
	require.NoError(t, err)

	fired := make(chan struct{})
	stop := session.Watch(func() { close(fired) })
	defer stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("expected expiry callback")
	}
}
