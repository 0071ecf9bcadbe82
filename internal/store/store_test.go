package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := NewSQLite(t.TempDir() + "/kv.db")
	require.NoError(t, err)

	badger, err := NewBadgerInMemory()
	require.NoError(t, err)

	backends := map[string]KV{"sqlite": sqlite, "badger": badger}
	t.Cleanup(func() {
		for _, kv := range backends {
			_ = kv.Close()
		}
	})
	return backends
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, kv.Set(ctx, KeyLanguage, []byte("ru")))

			got, ok, err := kv.Get(ctx, KeyLanguage)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "ru", string(got))

			// Overwrite wins.
			require.NoError(t, kv.Set(ctx, KeyLanguage, []byte("en")))
			got, _, err = kv.Get(ctx, KeyLanguage)
			require.NoError(t, err)
			require.Equal(t, "en", string(got))
		})
	}
}

func TestKVDelete(t *testing.T) {
	ctx := context.Background()

	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, KeyTheme, []byte("dark")))
			require.NoError(t, kv.Delete(ctx, KeyTheme))

			_, ok, err := kv.Get(ctx, KeyTheme)
			require.NoError(t, err)
			require.False(t, ok)

			// Deleting an absent key is not an error.
			require.NoError(t, kv.Delete(ctx, KeyTheme))
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/kv.db"

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, KeySidebarCollapsed, []byte("true")))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, KeySidebarCollapsed)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", string(got))
}
