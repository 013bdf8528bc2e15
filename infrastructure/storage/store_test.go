package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretebot/domain/entities"
	"fretebot/domain/interfaces"
)

func stores(t *testing.T) map[string]interfaces.SessionStore {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqliteStore, err := NewSQLiteStore(db)
	require.NoError(t, err)

	return map[string]interfaces.SessionStore{
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			state, err := store.Load(ctx, "transportadora01")
			require.NoError(t, err)
			assert.True(t, state.Empty())

			first := entities.SessionState(`{"cookies":[{"name":"JSESSIONID"}]}`)
			require.NoError(t, store.Save(ctx, "transportadora01", first))

			got, err := store.Load(ctx, "transportadora01")
			require.NoError(t, err)
			assert.Equal(t, first, got)

			// saving replaces the blob whole
			second := entities.SessionState(`{"cookies":[]}`)
			require.NoError(t, store.Save(ctx, "transportadora01", second))
			got, err = store.Load(ctx, "transportadora01")
			require.NoError(t, err)
			assert.Equal(t, second, got)

			// accounts do not leak into each other
			other, err := store.Load(ctx, "transportadora02")
			require.NoError(t, err)
			assert.True(t, other.Empty())
		})
	}
}

func TestSessionStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, "conta", entities.SessionState(`{}`)))
			require.NoError(t, store.Delete(ctx, "conta"))

			state, err := store.Load(ctx, "conta")
			require.NoError(t, err)
			assert.True(t, state.Empty())

			// deleting again is not an error
			require.NoError(t, store.Delete(ctx, "conta"))
		})
	}
}

func TestAccountSlug(t *testing.T) {
	assert.Equal(t, "transportadora01", accountSlug("transportadora01"))
	assert.Equal(t, "user_portal.com", accountSlug("user@portal.com"))
	assert.Equal(t, "default", accountSlug(""))
	// path separators never survive into the file name
	assert.Equal(t, ".._.._x", accountSlug("../../x"))
}
