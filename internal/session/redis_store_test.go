package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	s, err := store.Create(ctx, "user-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, s.SessionID)
	assert.Equal(t, "user-1", s.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	got, err := store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.SessionID, got.SessionID)
	assert.Equal(t, "user-1", got.UserID)
}

func TestRedisStore_Create_FreshIDPerSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	a, err := store.Create(ctx, "user-1", time.Hour)
	require.NoError(t, err)
	b, err := store.Create(ctx, "user-1", time.Hour)
	require.NoError(t, err)

	// One session per login; a user may hold several at once.
	assert.NotEqual(t, a.SessionID, b.SessionID)

	gotA, err := store.Get(ctx, a.SessionID)
	require.NoError(t, err)
	gotB, err := store.Get(ctx, b.SessionID)
	require.NoError(t, err)
	require.NotNil(t, gotA)
	require.NotNil(t, gotB)
}

func TestRedisStore_Create_Validation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Create(ctx, "", time.Hour)
	require.Error(t, err)

	_, err = store.Create(ctx, "user-1", 0)
	require.Error(t, err)
}

func TestRedisStore_Get_Missing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	got, err := store.Get(ctx, "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Get_ExpiredIsNonexistent(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	s, err := store.Create(ctx, "user-1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	got, err := store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got, "expired session must read as nonexistent")
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	s, err := store.Create(ctx, "user-1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, s.SessionID))

	got, err := store.Get(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, s.SessionID))
}
