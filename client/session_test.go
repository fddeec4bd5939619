package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_BootstrapWithoutToken(t *testing.T) {
	var calls atomic.Int32
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	s := NewSession(c, store)
	assert.False(t, s.Resolved())

	s.Bootstrap(context.Background())

	assert.True(t, s.Resolved())
	assert.Nil(t, s.User())
	assert.Zero(t, calls.Load(), "no token means no profile request")
}

func TestSession_BootstrapResolvesUser(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, User{ID: "user-1", Email: "fan@example.com", Role: "member"})
	}))
	store.Set(KeyToken, "tok-valid")

	s := NewSession(c, store)
	s.Bootstrap(context.Background())

	assert.True(t, s.Resolved())
	require.NotNil(t, s.User())
	assert.Equal(t, "fan@example.com", s.User().Email)
}

func TestSession_BootstrapInvalidTokenIsSilentLogout(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
	}))
	store.Set(KeyToken, "tok-expired")

	s := NewSession(c, store)
	s.Bootstrap(context.Background())

	assert.True(t, s.Resolved())
	assert.Nil(t, s.User())
	_, ok := store.Get(KeyToken)
	assert.False(t, ok, "expired token must be discarded")
}

func TestSession_LoginStoresTokenAndUser(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeData(t, w, http.StatusOK, authPayload{
			User:  User{ID: "user-1", Email: "fan@example.com"},
			Token: "tok-fresh",
		})
	}))

	s := NewSession(c, store)
	user, err := s.Login(context.Background(), "fan@example.com", "correct horse")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.True(t, s.Resolved())
	token, ok := store.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-fresh", token)
}

func TestSession_LoginFailureLeavesSessionAnonymous(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password")
	}))

	s := NewSession(c, store)
	_, err := s.Login(context.Background(), "fan@example.com", "wrong")
	require.Error(t, err)

	assert.Nil(t, s.User())
	_, ok := store.Get(KeyToken)
	assert.False(t, ok)
}

func TestSession_LogoutClearsEverything(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, User{ID: "user-1"})
	}))
	store.Set(KeyToken, "tok-valid")
	store.Set(KeyRedirectPath, "/events")
	store.Set(KeyLoginCallback, "membership")

	s := NewSession(c, store)
	s.Bootstrap(context.Background())
	require.NotNil(t, s.User())

	s.Logout()

	assert.Nil(t, s.User())
	for _, key := range []string{KeyToken, KeyRedirectPath, KeyLoginCallback} {
		_, ok := store.Get(key)
		assert.False(t, ok, "key %s should be cleared", key)
	}
}
