package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neyborhuud/huud-go/core/session"
	"github.com/neyborhuud/huud-go/integration/sessionstore/sqlite"
)

var _ session.Store = (*sqlite.Store)(nil)

func testSession() session.Session {
	return session.Session{
		AccessToken:  "acc-token",
		RefreshToken: "ref-token",
		User: session.User{
			ID:            "u1",
			Email:         "ada@example.com",
			Username:      "ada",
			EmailVerified: true,
		},
	}
}

func openStore(t *testing.T, opts ...sqlite.Option) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "huud.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	t.Parallel()

	_, err := sqlite.Open("")
	assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, store.Save(ctx, testSession()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession(), loaded)

	// Save overwrites in place.
	updated := testSession()
	updated.AccessToken = "acc-token-2"
	require.NoError(t, store.Save(ctx, updated))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc-token-2", loaded.AccessToken)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "huud.db")

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testSession()))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession(), loaded)
}

func TestStore_Encryption(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "huud.db")

	store, err := sqlite.Open(path, sqlite.WithEncryption("passphrase"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testSession()))

	t.Run("round trips with the right secret", func(t *testing.T) {
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testSession(), loaded)
	})

	t.Run("wrong secret cannot read", func(t *testing.T) {
		wrong, err := sqlite.Open(path, sqlite.WithEncryption("other"))
		require.NoError(t, err)
		defer wrong.Close()

		_, err = wrong.Load(ctx)
		assert.ErrorIs(t, err, sqlite.ErrDecryptFailed)
	})

	t.Run("plaintext reader sees ciphertext, not the token", func(t *testing.T) {
		plain, err := sqlite.Open(path)
		require.NoError(t, err)
		defer plain.Close()

		loaded, err := plain.Load(ctx)
		if err == nil {
			assert.NotEqual(t, "acc-token", loaded.AccessToken)
		}
	})

	require.NoError(t, store.Close())
}
