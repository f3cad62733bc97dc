package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() Session {
	now := time.Now().UTC().Truncate(time.Second)
	return Session{
		ID:            "sess-1",
		User:          User{ID: "u1", Name: "Dr. Ganesh", Email: "doc@example.com", Role: "doctor"},
		UpstreamToken: "upstream-token",
		CreatedAt:     now,
		ExpiresAt:     now.Add(12 * time.Hour),
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, store.Save(ctx, sess, time.Hour))

	// Sessions live under a fixed key prefix.
	assert.True(t, mr.Exists("session:token:sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.User, got.User)
	assert.Equal(t, "upstream-token", got.UpstreamToken)
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession(), time.Hour))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession(), time.Minute))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.User.ID)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
