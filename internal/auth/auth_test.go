package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zangerai/zanger/internal/store"
)

var testCreds = Credentials{Username: "beka", Password: "2123", Role: "Главный Юрист РК"}

func newTestManager(t *testing.T) (*Manager, store.KV) {
	t.Helper()
	kv, err := store.NewBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewManager(kv, testCreds), kv
}

func TestAuthenticateRejectsWrongCredentials(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for _, tc := range []struct{ user, pass string }{
		{"beka", "wrong"},
		{"someone", "2123"},
		{"", ""},
	} {
		session, err := m.Authenticate(ctx, tc.user, tc.pass)
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Nil(t, session)
	}
	require.Nil(t, m.Current())
}

func TestAuthenticateIssuesAndReusesSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Authenticate(ctx, "beka", "2123")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "beka", first.Username)
	require.Equal(t, "Главный Юрист РК", first.Role)

	// Logging in again while a session exists reuses it.
	second, err := m.Authenticate(ctx, "beka", "2123")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestLogoutClearsSessionAndPersistence(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, "beka", "2123")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	require.Nil(t, m.Current())

	_, ok, err := kv.Get(ctx, store.KeyCurrentUser)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRestoreResumesPersistedSession(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	session, err := m.Authenticate(ctx, "beka", "2123")
	require.NoError(t, err)

	// A fresh manager over the same store picks the session up.
	restored, err := NewManager(kv, testCreds).Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	require.Equal(t, session.ID, restored.ID)
	require.Equal(t, session.Username, restored.Username)
}

func TestRestorePurgesMalformedRecord(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyCurrentUser, []byte("{not json")))

	restored, err := m.Restore(ctx)
	require.NoError(t, err)
	require.Nil(t, restored)

	_, ok, err := kv.Get(ctx, store.KeyCurrentUser)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRestoreWithoutRecordIsLoggedOut(t *testing.T) {
	m, _ := newTestManager(t)

	restored, err := m.Restore(context.Background())
	require.NoError(t, err)
	require.Nil(t, restored)
	require.Nil(t, m.Current())
}
