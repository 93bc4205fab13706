package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/neyborhuud/huud-go/core/session"
)

// mockStore implements session.Store for testing
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) (session.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, sess session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *mockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("rehydrates persisted session", func(t *testing.T) {
		t.Parallel()

		stored := session.Session{AccessToken: "tok", User: session.User{ID: "u1"}}
		store := &mockStore{}
		store.On("Load", mock.Anything).Return(stored, nil)

		mgr, err := session.NewManager(context.Background(), store)
		require.NoError(t, err)

		assert.True(t, mgr.IsAuthenticated())
		assert.Equal(t, "tok", mgr.Token())
		assert.Equal(t, "u1", mgr.User().ID)
		store.AssertExpectations(t)
	})

	t.Run("empty store starts anonymous", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Load", mock.Anything).Return(session.Session{}, session.ErrNotFound)

		mgr, err := session.NewManager(context.Background(), store)
		require.NoError(t, err)
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("store failure propagates", func(t *testing.T) {
		t.Parallel()

		bad := errors.New("disk unreadable")
		store := &mockStore{}
		store.On("Load", mock.Anything).Return(session.Session{}, bad)

		_, err := session.NewManager(context.Background(), store)
		assert.ErrorIs(t, err, bad)
	})
}

func TestManager_SetAndClear(t *testing.T) {
	t.Parallel()

	t.Run("set persists and updates current", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewManager(context.Background(), session.NewMemoryStore())
		require.NoError(t, err)

		sess := session.Session{AccessToken: "tok", RefreshToken: "ref"}
		require.NoError(t, mgr.Set(context.Background(), sess))
		assert.Equal(t, sess, mgr.Current())
	})

	t.Run("clear removes current and persisted state", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr, err := session.NewManager(context.Background(), store)
		require.NoError(t, err)
		require.NoError(t, mgr.Set(context.Background(), session.Session{AccessToken: "tok"}))

		require.NoError(t, mgr.Clear(context.Background()))
		assert.False(t, mgr.IsAuthenticated())

		_, err = store.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("save failure surfaces ErrSaveSession", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Load", mock.Anything).Return(session.Session{}, session.ErrNotFound)
		store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		mgr, err := session.NewManager(context.Background(), store)
		require.NoError(t, err)

		err = mgr.Set(context.Background(), session.Session{AccessToken: "tok"})
		assert.ErrorIs(t, err, session.ErrSaveSession)
	})
}

func TestManager_SetUser(t *testing.T) {
	t.Parallel()

	mgr, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, mgr.Set(context.Background(), session.Session{AccessToken: "tok"}))

	require.NoError(t, mgr.SetUser(context.Background(), session.User{ID: "u2", EmailVerified: true}))

	assert.Equal(t, "tok", mgr.Token())
	assert.Equal(t, "u2", mgr.User().ID)
	assert.True(t, mgr.User().EmailVerified)
}

func TestManager_Invalidate(t *testing.T) {
	t.Parallel()

	t.Run("clears storage and fires hooks after the delay", func(t *testing.T) {
		t.Parallel()

		var fired atomic.Int32
		var reason atomic.Value

		store := session.NewMemoryStore()
		mgr, err := session.NewManager(context.Background(), store,
			session.WithInvalidateDelay(20*time.Millisecond),
			session.WithOnInvalidate(func(r string) {
				reason.Store(r)
				fired.Add(1)
			}),
		)
		require.NoError(t, err)
		require.NoError(t, mgr.Set(context.Background(), session.Session{AccessToken: "tok"}))

		require.NoError(t, mgr.Invalidate(context.Background(), "session_invalid"))

		// Storage is cleared immediately.
		_, err = store.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound)
		assert.False(t, mgr.IsAuthenticated())

		// Hooks fire only after the configured delay.
		assert.Equal(t, int32(0), fired.Load())
		assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, "session_invalid", reason.Load())
	})

	t.Run("zero delay fires hooks synchronously", func(t *testing.T) {
		t.Parallel()

		var fired bool
		mgr, err := session.NewManager(context.Background(), session.NewMemoryStore(),
			session.WithInvalidateDelay(0),
			session.WithOnInvalidate(func(string) { fired = true }),
		)
		require.NoError(t, err)

		require.NoError(t, mgr.Invalidate(context.Background(), "session_invalid"))
		assert.True(t, fired)
	})
}
